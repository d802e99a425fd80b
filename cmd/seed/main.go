package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"post-service/internal/shared/jwt"
)

// Seeds the running service with demo posts over its HTTP API.

type createReq struct {
	Type         string   `json:"type"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	CommunityIDs []uint64 `json:"community_ids"`
	TopicNames   []string `json:"topic_names"`
	ImageURLs    []string `json:"image_urls"`
}

func main() {
	base := flag.String("base", "http://localhost:8082", "service base URL")
	count := flag.Int("count", 20, "number of posts to create")
	userID := flag.Uint64("user", 1, "acting user id")
	flag.Parse()

	gofakeit.Seed(time.Now().UnixNano())

	tok, err := jwt.Make(*userID)
	if err != nil {
		log.Fatalf("token: %v", err)
	}

	types := []string{"discussion", "discussion", "project", "event"}
	for i := 0; i < *count; i++ {
		req := createReq{
			Type:         types[i%len(types)],
			Name:         gofakeit.Sentence(4),
			Description:  gofakeit.Paragraph(1, 3, 12, " "),
			CommunityIDs: []uint64{uint64(gofakeit.Number(1, 5))},
			TopicNames:   []string{gofakeit.BuzzWord(), gofakeit.BuzzWord()},
		}
		if gofakeit.Bool() {
			req.ImageURLs = []string{gofakeit.URL(), gofakeit.URL()}
		}
		if err := createPost(*base, tok, req); err != nil {
			log.Printf("post %d: %v", i, err)
		}
	}
	log.Printf("seeded %d posts", *count)
}

func createPost(base, token string, req createReq) error {
	b, _ := json.Marshal(req)
	httpReq, err := http.NewRequest(http.MethodPost, base+"/posts", bytes.NewReader(b))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
