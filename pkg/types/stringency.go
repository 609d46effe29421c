// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// Stringency names a clustering preset of the enrichment service.
type Stringency string

const (
	StringencyLowest  Stringency = "lowest"
	StringencyLow     Stringency = "low"
	StringencyMedium  Stringency = "medium"
	StringencyHigh    Stringency = "high"
	StringencyHighest Stringency = "highest"
)

// Stringencies lists the named presets from loosest to strictest.
var Stringencies = []Stringency{
	StringencyLowest,
	StringencyLow,
	StringencyMedium,
	StringencyHigh,
	StringencyHighest,
}

// ClusterParams are the five numeric clustering parameters sent with a
// cluster report request, in the order the service expects them.
type ClusterParams struct {
	Overlap     int     `json:"overlap" yaml:"overlap"`
	InitialSeed int     `json:"initial_seed" yaml:"initial_seed"`
	FinalSeed   int     `json:"final_seed" yaml:"final_seed"`
	Linkage     float64 `json:"linkage" yaml:"linkage"`
	Kappa       int     `json:"kappa" yaml:"kappa"`
}

// DefaultClusterParams is used for any stringency name that is not one
// of the named presets.
var DefaultClusterParams = ClusterParams{Overlap: 3, InitialSeed: 3, FinalSeed: 3, Linkage: 0.5, Kappa: 50}

// ParamsFor maps a stringency name to its clustering parameters. Matching
// is case-insensitive. Unrecognized names get DefaultClusterParams rather
// than an error.
func ParamsFor(s Stringency) ClusterParams {
	switch Stringency(strings.ToLower(strings.TrimSpace(string(s)))) {
	case StringencyHighest:
		return ClusterParams{Overlap: 5, InitialSeed: 5, FinalSeed: 5, Linkage: 0.5, Kappa: 100}
	case StringencyHigh:
		return ClusterParams{Overlap: 4, InitialSeed: 5, FinalSeed: 5, Linkage: 0.5, Kappa: 85}
	case StringencyMedium:
		return ClusterParams{Overlap: 4, InitialSeed: 4, FinalSeed: 4, Linkage: 0.5, Kappa: 50}
	case StringencyLow:
		return ClusterParams{Overlap: 4, InitialSeed: 3, FinalSeed: 3, Linkage: 0.5, Kappa: 35}
	case StringencyLowest:
		return ClusterParams{Overlap: 3, InitialSeed: 3, FinalSeed: 3, Linkage: 0.5, Kappa: 20}
	default:
		return DefaultClusterParams
	}
}

// Args returns the parameters as positional SOAP arguments.
func (p ClusterParams) Args() []string {
	return []string{
		fmt.Sprintf("%d", p.Overlap),
		fmt.Sprintf("%d", p.InitialSeed),
		fmt.Sprintf("%d", p.FinalSeed),
		fmt.Sprintf("%g", p.Linkage),
		fmt.Sprintf("%d", p.Kappa),
	}
}
