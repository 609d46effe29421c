// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package david

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/enrichment-engine/pkg/types"
)

// Chart report defaults used when the caller passes zero values.
const (
	DefaultChartThreshold = 0.1
	DefaultChartCount     = 2
)

// GeneClusterReport clusters the genes of the session's list under the
// given parameters. Each record is one gene, labelled with its name.
func (c *Client) GeneClusterReport(ctx context.Context, sess *Session, params types.ClusterParams) ([]types.Cluster, error) {
	const op = "getGeneClusterReport"
	if err := requireSession(sess, op); err != nil {
		return nil, err
	}
	returns, _, fault, err := call[geneClusterXML](ctx, c, sess, op, params.Args()...)
	if err != nil {
		return nil, err
	}
	if fault != nil {
		return nil, &RemoteError{Op: op, Fault: fault.message()}
	}

	clusters := make([]types.Cluster, 0, len(returns))
	for _, gc := range returns {
		clusters = append(clusters, gc.toCluster())
	}
	c.logReport(op, params, clusters)
	return clusters, nil
}

// TermClusterReport clusters the annotation terms enriched in the
// session's list. Each record is one term; its statistics are kept in
// the record attributes.
func (c *Client) TermClusterReport(ctx context.Context, sess *Session, params types.ClusterParams) ([]types.Cluster, error) {
	const op = "getTermClusterReport"
	if err := requireSession(sess, op); err != nil {
		return nil, err
	}
	returns, _, fault, err := call[termClusterXML](ctx, c, sess, op, params.Args()...)
	if err != nil {
		return nil, err
	}
	if fault != nil {
		return nil, &RemoteError{Op: op, Fault: fault.message()}
	}

	clusters := make([]types.Cluster, 0, len(returns))
	for _, tc := range returns {
		clusters = append(clusters, tc.toCluster())
	}
	c.logReport(op, params, clusters)
	return clusters, nil
}

// ChartReport returns the functional annotation chart: terms with an
// EASE score at or below threshold and at least count list hits.
func (c *Client) ChartReport(ctx context.Context, sess *Session, threshold float64, count int) ([]types.ChartRecord, error) {
	const op = "getChartReport"
	if err := requireSession(sess, op); err != nil {
		return nil, err
	}
	if threshold <= 0 {
		threshold = DefaultChartThreshold
	}
	if count <= 0 {
		count = DefaultChartCount
	}

	returns, _, fault, err := call[chartRecordXML](ctx, c, sess, op,
		strconv.FormatFloat(threshold, 'g', -1, 64), strconv.Itoa(count))
	if err != nil {
		return nil, err
	}
	if fault != nil {
		return nil, &RemoteError{Op: op, Fault: fault.message()}
	}

	records := make([]types.ChartRecord, 0, len(returns))
	for _, r := range returns {
		records = append(records, r.toChartRecord())
	}
	c.log.WithFields(logrus.Fields{"op": op, "records": len(records)}).Debug("report fetched")
	return records, nil
}

func (c *Client) logReport(op string, params types.ClusterParams, clusters []types.Cluster) {
	records := 0
	for _, cl := range clusters {
		records += len(cl.Records)
	}
	c.log.WithFields(logrus.Fields{
		"op":       op,
		"params":   fmt.Sprintf("%+v", params),
		"clusters": len(clusters),
		"records":  records,
	}).Debug("report fetched")
}

// Service XML structures. Field names follow the service's WSDL.

type geneClusterXML struct {
	Name        string          `xml:"name"`
	Score       string          `xml:"score"`
	ListRecords []listRecordXML `xml:"listRecords"`
}

type listRecordXML struct {
	Name       string   `xml:"name"`
	Values     []string `xml:"values"`
	GeneObject struct {
		Fields []field `xml:",any"`
	} `xml:"geneObject"`
}

func (g geneClusterXML) toCluster() types.Cluster {
	c := types.Cluster{
		Name:  strings.TrimSpace(g.Name),
		Score: parseFloat(g.Score),
	}
	for _, lr := range g.ListRecords {
		attrs := fieldMap(lr.GeneObject.Fields)
		rec := types.Record{Attributes: attrs}
		if len(lr.Values) > 0 {
			rec.ID = strings.TrimSpace(lr.Values[0])
		}
		rec.Label = attrs["name"]
		if rec.Label == "" {
			rec.Label = strings.TrimSpace(lr.Name)
		}
		c.Records = append(c.Records, rec)
	}
	return c
}

type termClusterXML struct {
	Name               string           `xml:"name"`
	Score              string           `xml:"score"`
	SimpleChartRecords []chartRecordXML `xml:"simpleChartRecords"`
}

type chartRecordXML struct {
	CategoryName   string `xml:"categoryName"`
	TermName       string `xml:"termName"`
	ListHits       string `xml:"listHits"`
	Percent        string `xml:"percent"`
	EASE           string `xml:"ease"`
	GeneIDs        string `xml:"geneIds"`
	ListTotals     string `xml:"listTotals"`
	PopHits        string `xml:"popHits"`
	PopTotals      string `xml:"popTotals"`
	FoldEnrichment string `xml:"foldEnrichment"`
	Bonferroni     string `xml:"bonferroniValue"`
	Benjamini      string `xml:"benjamini"`
	AFDR           string `xml:"afdr"`
}

func (t termClusterXML) toCluster() types.Cluster {
	c := types.Cluster{
		Name:  strings.TrimSpace(t.Name),
		Score: parseFloat(t.Score),
	}
	for _, r := range t.SimpleChartRecords {
		term := strings.TrimSpace(r.TermName)
		c.Records = append(c.Records, types.Record{
			ID:         term,
			Label:      term,
			Category:   strings.TrimSpace(r.CategoryName),
			Attributes: r.attributes(),
		})
	}
	return c
}

func (r chartRecordXML) attributes() map[string]string {
	m := map[string]string{
		"count":           r.ListHits,
		"percent":         r.Percent,
		"ease":            r.EASE,
		"genes":           r.GeneIDs,
		"list_totals":     r.ListTotals,
		"pop_hits":        r.PopHits,
		"pop_totals":      r.PopTotals,
		"fold_enrichment": r.FoldEnrichment,
		"bonferroni":      r.Bonferroni,
		"benjamini":       r.Benjamini,
		"fdr":             r.AFDR,
	}
	for k, v := range m {
		if v = strings.TrimSpace(v); v == "" {
			delete(m, k)
		} else {
			m[k] = v
		}
	}
	return m
}

func (r chartRecordXML) toChartRecord() types.ChartRecord {
	return types.ChartRecord{
		Category:       strings.TrimSpace(r.CategoryName),
		Term:           strings.TrimSpace(r.TermName),
		Count:          parseInt(r.ListHits),
		Percent:        parseFloat(r.Percent),
		EASE:           parseFloat(r.EASE),
		Genes:          strings.TrimSpace(r.GeneIDs),
		ListTotals:     parseInt(r.ListTotals),
		PopHits:        parseInt(r.PopHits),
		PopTotals:      parseInt(r.PopTotals),
		FoldEnrichment: parseFloat(r.FoldEnrichment),
		Bonferroni:     parseFloat(r.Bonferroni),
		Benjamini:      parseFloat(r.Benjamini),
		FDR:            parseFloat(r.AFDR),
	}
}

// parseFloat and parseInt read numeric service fields. Missing or
// malformed values read as zero.
func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func parseInt(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}
