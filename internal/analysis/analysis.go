// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analysis runs a complete enrichment analysis against the remote
// service and saves or restores its results.
//
// A run authenticates, submits the identifier list, fetches the gene and
// term cluster reports under one stringency, and summarizes both. The
// four results form a types.Analysis, which Save and Load persist without
// contacting the service.
package analysis

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/enrichment-engine/internal/david"
	"github.com/pdiddy/enrichment-engine/internal/summarize"
	"github.com/pdiddy/enrichment-engine/pkg/types"
)

// DefaultIDType is the identifier namespace assumed when a request names none.
const DefaultIDType = "ENSEMBL_GENE_ID"

// Service is the part of the remote client a run needs. *david.Client
// implements it.
type Service interface {
	Authenticate(ctx context.Context, identity string) (*david.Session, error)
	AddList(ctx context.Context, sess *david.Session, ids []string, idType string) (david.ListHandle, error)
	GeneClusterReport(ctx context.Context, sess *david.Session, params types.ClusterParams) ([]types.Cluster, error)
	TermClusterReport(ctx context.Context, sess *david.Session, params types.ClusterParams) ([]types.Cluster, error)
}

// Request describes one run.
type Request struct {
	types.AnalysisConfig

	// IDs is the identifier list to submit.
	IDs []string

	// Params overrides the parameters Stringency maps to.
	Params *types.ClusterParams
}

// ClusterParams returns the clustering parameters for the request.
func (r Request) ClusterParams() types.ClusterParams {
	if r.Params != nil {
		return *r.Params
	}
	s := r.Stringency
	if s == "" {
		s = types.StringencyMedium
	}
	return types.ParamsFor(s)
}

// Run performs the analysis described by req, writing progress lines to
// w. A TopN of 0 means summarize.DefaultTopN; a negative TopN keeps one
// term per cluster. Request problems are reported as david.ErrValidation before any
// network call; service errors are returned unchanged.
func Run(ctx context.Context, svc Service, req Request, w io.Writer) (*types.Analysis, error) {
	ids, err := david.ValidateIDs(req.IDs)
	if err != nil {
		return nil, err
	}
	idType := strings.TrimSpace(req.IDType)
	if idType == "" {
		idType = DefaultIDType
	}
	topN := effectiveTopN(req.TopN)
	params := req.ClusterParams()

	sess, err := svc.Authenticate(ctx, req.Identity)
	if err != nil {
		return nil, err
	}

	list, err := svc.AddList(ctx, sess, ids, idType)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "submitted %d identifiers (%s), %.0f%% recognized\n",
		list.Size, list.IDType, list.MappedRatio*100)

	geneClusters, err := svc.GeneClusterReport(ctx, sess, params)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "found %d gene clusters, processing\n", len(geneClusters))

	termClusters, err := svc.TermClusterReport(ctx, sess, params)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "found %d term clusters, processing\n", len(termClusters))

	return &types.Analysis{
		GeneClusters: geneClusters,
		GeneSummary:  summarize.Summarize(geneClusters, topN),
		TermClusters: termClusters,
		TermSummary:  summarize.Summarize(termClusters, topN),
	}, nil
}

// Resummarize recomputes both summaries of a with a different topN,
// leaving the cluster reports as they are. As in Run, a topN of 0 means
// summarize.DefaultTopN and a negative topN keeps one term per cluster.
func Resummarize(a *types.Analysis, topN int) *types.Analysis {
	topN = effectiveTopN(topN)
	return &types.Analysis{
		GeneClusters: a.GeneClusters,
		GeneSummary:  summarize.Summarize(a.GeneClusters, topN),
		TermClusters: a.TermClusters,
		TermSummary:  summarize.Summarize(a.TermClusters, topN),
	}
}

func effectiveTopN(n int) int {
	if n == 0 {
		return summarize.DefaultTopN
	}
	return n
}
