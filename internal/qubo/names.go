package qubo

import (
	"fmt"
	"strconv"
)

// Name returns the variable name of a flat matrix index, "n{read}t{position}".
func Name(idx, n int) string {
	return "n" + strconv.Itoa(idx/n) + "t" + strconv.Itoa(idx%n)
}

// Index is the inverse of Name: it returns the flat matrix index of a variable.
func Index(name string, n int) (int, error) {
	read, pos, err := parseName(name)
	if err != nil {
		return 0, err
	}
	if read >= n || pos >= n {
		return 0, fmt.Errorf("variable %s is out of range for %d reads", name, n)
	}
	return read*n + pos, nil
}

// parseName splits "n{read}t{position}" into its read and position.
func parseName(name string) (read, pos int, err error) {
	if len(name) < 4 || name[0] != 'n' {
		return 0, 0, fmt.Errorf("malformed variable name %q", name)
	}

	t := -1
	for i := 1; i < len(name); i++ {
		if name[i] == 't' {
			t = i
			break
		}
	}
	if t < 2 || t == len(name)-1 || !digits(name[1:t]) || !digits(name[t+1:]) {
		return 0, 0, fmt.Errorf("malformed variable name %q", name)
	}

	if read, err = strconv.Atoi(name[1:t]); err != nil {
		return 0, 0, fmt.Errorf("malformed read in variable name %q: %w", name, err)
	}
	if pos, err = strconv.Atoi(name[t+1:]); err != nil {
		return 0, 0, fmt.Errorf("malformed position in variable name %q: %w", name, err)
	}
	return read, pos, nil
}

func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// varLess orders assembly variables by read then position (ie by flat index).
// Names that aren't assembly variables sort after them, lexically.
func varLess(a, b string) bool {
	ra, pa, errA := parseName(a)
	rb, pb, errB := parseName(b)
	switch {
	case errA == nil && errB == nil:
		if ra != rb {
			return ra < rb
		}
		if pa != pb {
			return pa < pb
		}
		return a < b
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}
