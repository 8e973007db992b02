package client

import (
	"context"
	"net/http"
)

// NetworkClient fetches and exports interaction networks.
type NetworkClient struct {
	client *Client
}

// Graph returns the network of name. A drug without interactions yields a
// view with a nil Graph and the server's message.
func (n *NetworkClient) Graph(ctx context.Context, name string) (*NetworkView, error) {
	var view NetworkView
	if err := n.client.get(ctx, drugPath(name, "/network"), &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// Document downloads the standalone HTML network document.
func (n *NetworkClient) Document(ctx context.Context, name string) ([]byte, error) {
	var doc []byte
	if err := n.client.do(ctx, http.MethodGet, drugPath(name, "/network.html"), nil, nil, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Export asks the server to store the document and returns its download
// URL. The *APIError reports IsNotImplemented when storage is disabled.
func (n *NetworkClient) Export(ctx context.Context, name string) (*ExportResult, error) {
	var res ExportResult
	if err := n.client.post(ctx, drugPath(name, "/network/export"), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

//Personal.AI order the ending
