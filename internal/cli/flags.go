package cli

import "qcounts/internal/config"

// Flags holds command-line flags
type Flags struct {
	Top        int
	TestPath   string
	NameFilter string
	TestCases  bool
	Verbose    bool
	All        bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Top:        f.Top,
		TestPath:   f.TestPath,
		NameFilter: f.NameFilter,
		TestCases:  f.TestCases,
		Verbose:    f.Verbose,
		All:        f.All,
	}
}
