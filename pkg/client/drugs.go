package client

import (
	"context"
	"net/url"
)

// DrugsClient queries the drug catalog. Every method returns ErrNoData when
// the server found nothing or its query failed.
type DrugsClient struct {
	client *Client
}

// Search lists up to 10 drugs whose name starts with term.
func (d *DrugsClient) Search(ctx context.Context, term string) ([]DrugSummary, error) {
	return getData[[]DrugSummary](ctx, d.client, "/api/v1/drugs/search?q="+url.QueryEscape(term))
}

// Top lists the phase 3 and 4 suggestion list.
func (d *DrugsClient) Top(ctx context.Context) ([]DrugSummary, error) {
	return getData[[]DrugSummary](ctx, d.client, "/api/v1/drugs/top")
}

func (d *DrugsClient) Detail(ctx context.Context, name string) (*DrugDetail, error) {
	return getData[*DrugDetail](ctx, d.client, drugPath(name, ""))
}

func (d *DrugsClient) Properties(ctx context.Context, name string) (*PropertyRecord, error) {
	return getData[*PropertyRecord](ctx, d.client, drugPath(name, "/properties"))
}

func (d *DrugsClient) Interactions(ctx context.Context, name string) ([]Interaction, error) {
	return getData[[]Interaction](ctx, d.client, drugPath(name, "/interactions"))
}

// DrugLikeness summarizes rule-of-five compliance over the search results
// for term.
func (d *DrugsClient) DrugLikeness(ctx context.Context, term string) (*DrugLikeness, error) {
	return getData[*DrugLikeness](ctx, d.client, "/api/v1/druglikeness?q="+url.QueryEscape(term))
}

//Personal.AI order the ending
