package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/coffeegram/coffee-backend/internal/domain"
)

// postIndex is the posts search index name
const postIndex = "posts"

// postDocument is the indexed shape of a post
type postDocument struct {
	ID        uint64    `json:"id"`
	Author    string    `json:"author"`
	Caption   string    `json:"caption"`
	CreatedAt time.Time `json:"created_at"`
}

// IndexPost upserts the post into the search index
func (c *Client) IndexPost(ctx context.Context, post *domain.Post) error {
	doc := postDocument{
		ID:        post.ID,
		Author:    post.AuthorEmail,
		Caption:   post.Caption,
		CreatedAt: post.CreatedAt,
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      postIndex,
		DocumentID: strconv.FormatUint(post.ID, 10),
		Body:       bytes.NewReader(body),
		Refresh:    "false",
	}
	res, err := req.Do(ctx, c.es)
	if err != nil {
		return fmt.Errorf("index post: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index post: %s", res.String())
	}
	return nil
}

// DeletePost removes the post from the index. A missing document is
// not an error.
func (c *Client) DeletePost(ctx context.Context, postID uint64) error {
	req := esapi.DeleteRequest{
		Index:      postIndex,
		DocumentID: strconv.FormatUint(postID, 10),
	}
	res, err := req.Do(ctx, c.es)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete post: %s", res.String())
	}
	return nil
}

// SearchPosts runs a full-text query over captions and authors and
// returns matching post ids, best match first.
func (c *Client) SearchPosts(ctx context.Context, query string, limit int) ([]uint64, error) {
	if limit <= 0 {
		limit = 20
	}

	var buf bytes.Buffer
	body := map[string]interface{}{
		"size": limit,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"caption^2", "author"},
			},
		},
	}
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(postIndex),
		c.es.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("search posts: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search posts: %s", res.String())
	}

	var result struct {
		Hits struct {
			Hits []struct {
				Source postDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	ids := make([]uint64, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		ids = append(ids, hit.Source.ID)
	}
	return ids, nil
}
