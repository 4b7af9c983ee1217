package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/alexmontanha/MeuProjetoAPI/internal/models"
)

// Indexer mirrors the product table into the search index. Like event
// publishing it is best effort, write handlers log failures and move on.
type Indexer interface {
	IndexProduct(ctx context.Context, product *models.Product) error
	RemoveProduct(ctx context.Context, id uint) error
}

// ProductIndex implements Indexer against a live cluster, one document per
// product keyed by the product id.
type ProductIndex struct {
	Client *elasticsearch.Client
	Index  string
}

func NewProductIndex(client *elasticsearch.Client, index string) *ProductIndex {
	return &ProductIndex{Client: client, Index: index}
}

var _ Indexer = (*ProductIndex)(nil)

func (x *ProductIndex) IndexProduct(ctx context.Context, product *models.Product) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(product); err != nil {
		return fmt.Errorf("index product %d: %w", product.ID, err)
	}

	res, err := x.Client.Index(
		x.Index,
		&buf,
		x.Client.Index.WithDocumentID(strconv.FormatUint(uint64(product.ID), 10)),
		x.Client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index product %d: %w", product.ID, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index product %d: %s", product.ID, res.Status())
	}
	return nil
}

func (x *ProductIndex) RemoveProduct(ctx context.Context, id uint) error {
	res, err := x.Client.Delete(
		x.Index,
		strconv.FormatUint(uint64(id), 10),
		x.Client.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("remove product %d: %w", id, err)
	}
	defer res.Body.Close()

	// A document can legitimately be missing, for example when the product
	// was created while the cluster was down.
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("remove product %d: %s", id, res.Status())
	}
	return nil
}

// NopIndexer stands in when ES_URL is not configured.
type NopIndexer struct{}

var _ Indexer = NopIndexer{}

func (NopIndexer) IndexProduct(ctx context.Context, product *models.Product) error { return nil }

func (NopIndexer) RemoveProduct(ctx context.Context, id uint) error { return nil }
