package search

import (
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/coffeegram/coffee-backend/pkg/logger"
)

// Client wraps the Elasticsearch connection
type Client struct {
	es *elasticsearch.Client
}

// NewClient connects and verifies the cluster is reachable
func NewClient(addresses []string, username, password string) (*Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: addresses,
		Username:  username,
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	res, err := es.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch ping: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch ping: %s", res.String())
	}

	logger.GetLogger().Info().Strs("addresses", addresses).Msg("elasticsearch connected")
	return &Client{es: es}, nil
}
