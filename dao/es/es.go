package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"usof/models"
	"usof/settings"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"
)

// 帖子全文检索，未启用时 client 为 nil，logic 层回落到 SQL LIKE
var (
	client *elasticsearch.Client
	index  string
)

const postMapping = `{
  "mappings": {
    "properties": {
      "title":       {"type": "text"},
      "content":     {"type": "text"},
      "status":      {"type": "keyword"},
      "author_id":   {"type": "keyword"},
      "create_time": {"type": "date"}
    }
  }
}`

type postDoc struct {
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Status     string    `json:"status"`
	AuthorID   string    `json:"author_id"`
	CreateTime time.Time `json:"create_time"`
}

func Init(cfg *settings.ElasticsearchConfig) error {
	if cfg == nil || !cfg.Enabled {
		client = nil
		return nil
	}
	c, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return fmt.Errorf("create elasticsearch client failed: %w", err)
	}
	index = cfg.Index
	if index == "" {
		index = "usof_posts"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = ensureIndex(ctx, c); err != nil {
		return err
	}
	client = c
	zap.L().Info("init elasticsearch success", zap.Strings("addresses", cfg.Addresses), zap.String("index", index))
	return nil
}

func Enabled() bool {
	return client != nil
}

func ensureIndex(ctx context.Context, c *elasticsearch.Client) error {
	res, err := c.Indices.Exists([]string{index}, c.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index %s failed: %w", index, err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}
	res, err = c.Indices.Create(index,
		c.Indices.Create.WithBody(bytes.NewReader([]byte(postMapping))),
		c.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("create index %s failed: %w", index, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("create index %s failed: %s", index, res.String())
	}
	return nil
}

// IndexPost 写入或覆盖帖子文档
func IndexPost(ctx context.Context, p *models.Post) error {
	if client == nil {
		return nil
	}
	body, err := json.Marshal(postDoc{
		Title:      p.Title,
		Content:    p.Content,
		Status:     p.Status,
		AuthorID:   strconv.FormatInt(p.AuthorID, 10),
		CreateTime: p.CreateTime,
	})
	if err != nil {
		return fmt.Errorf("encode post doc failed: %w", err)
	}
	res, err := client.Index(index, bytes.NewReader(body),
		client.Index.WithDocumentID(strconv.FormatInt(p.ID, 10)),
		client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index post %d failed: %w", p.ID, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index post %d failed: %s", p.ID, res.String())
	}
	return nil
}

// DeletePost 文档不存在不算错误
func DeletePost(ctx context.Context, postID int64) error {
	if client == nil {
		return nil
	}
	res, err := client.Delete(index, strconv.FormatInt(postID, 10), client.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("delete post doc %d failed: %w", postID, err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("delete post doc %d failed: %s", postID, res.String())
	}
	return nil
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID string `json:"_id"`
		} `json:"hits"`
	} `json:"hits"`
}

// SearchPosts 只检索 active 帖子，按相关度返回帖子 ID
func SearchPosts(ctx context.Context, keyword string, limit int) ([]int64, error) {
	if client == nil {
		return nil, fmt.Errorf("elasticsearch disabled")
	}
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": map[string]interface{}{
					"multi_match": map[string]interface{}{
						"query":  keyword,
						"fields": []string{"title^2", "content"},
					},
				},
				"filter": map[string]interface{}{
					"term": map[string]interface{}{"status": models.StatusActive},
				},
			},
		},
	}
	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("encode search query failed: %w", err)
	}
	res, err := client.Search(
		client.Search.WithContext(ctx),
		client.Search.WithIndex(index),
		client.Search.WithBody(bytes.NewReader(body)),
		client.Search.WithSize(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("search posts failed: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search posts failed: %s", res.String())
	}
	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read search response failed: %w", err)
	}
	var sr searchResponse
	if err = json.Unmarshal(raw, &sr); err != nil {
		return nil, fmt.Errorf("decode search response failed: %w", err)
	}
	ids := make([]int64, 0, len(sr.Hits.Hits))
	for _, h := range sr.Hits.Hits {
		id, err := strconv.ParseInt(h.ID, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}
