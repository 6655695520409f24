package cmd

import (
	"fmt"
	"log"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// https://pmarsceill.github.io/just-the-docs/docs/navigation-structure/
const rootPage = `---
layout: default
title: %s
nav_order: %d
has_children: true
permalink: /
---
`

// child command without children
const childPage = `---
layout: default
title: %s
parent: %s
nav_order: %d
---
`

// navOrder is the position of each command's page in the docs' navigation
var navOrder = map[string]int{
	"qdenovo":         0,
	"qdenovo_solve":   0,
	"qdenovo_batch":   1,
	"qdenovo_qubo":    2,
	"qdenovo_ising":   3,
	"qdenovo_overlap": 4,
}

// docsCmd is for generating the Markdown docs of every command
var docsCmd = &cobra.Command{
	Use:    "docs",
	Short:  "Write Markdown documentation for each command",
	Hidden: true,
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("dir")
		if err := doc.GenMarkdownTreeCustom(RootCmd, dir, filePrepender, linkHandler); err != nil {
			log.Fatal(err)
		}
	},
}

// filePrepender adds YAML headings that are required by the just-the-docs theme
// https://github.com/spf13/cobra/blob/master/doc/md_docs.md
func filePrepender(filename string) string {
	base := pageName(filename)
	if base == "qdenovo" {
		return fmt.Sprintf(rootPage, base, navOrder[base])
	}
	return fmt.Sprintf(childPage, strings.TrimPrefix(base, "qdenovo_"), "qdenovo", navOrder[base])
}

// linkHandler returns the URL to a documentation page
func linkHandler(filename string) string {
	base := pageName(filename)
	if base == "qdenovo" {
		return "/"
	}
	return base
}

func pageName(filename string) string {
	name := filepath.Base(filename)
	return strings.TrimSuffix(name, path.Ext(name))
}

// set flags
func init() {
	docsCmd.Flags().String("dir", "./docs", "directory to write the docs to")

	RootCmd.AddCommand(docsCmd)
}
