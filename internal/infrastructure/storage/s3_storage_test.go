package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"media-publisher/internal/pkg/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap/zaptest"
)

func newTestS3(t *testing.T, srv *httptest.Server, cfg config.S3Config) *S3Storage {
	t.Helper()
	client := s3.New(s3.Options{
		Region:       "us-east-1",
		BaseEndpoint: aws.String(srv.URL),
		UsePathStyle: true,
		Credentials:  credentials.NewStaticCredentialsProvider("AKID", "SECRET", ""),
	})
	return NewS3StorageWithClient(client, cfg, zaptest.NewLogger(t), nil)
}

func TestS3StoragePublish(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		_, _ = io.Copy(io.Discard, r.Body)
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := newTestS3(t, srv, config.S3Config{
		Bucket:        "media",
		Region:        "us-east-1",
		Prefix:        "images",
		PublicBaseURL: "https://cdn.example.com/",
	})
	url, err := s.Publish(context.Background(), writeTemp(t, "a.jpg", "data"), "a b.jpg")
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/media/images/a_b.jpg" {
		t.Fatalf("%s %s", gotMethod, gotPath)
	}
	if url != "https://cdn.example.com/images/a_b.jpg" {
		t.Fatalf("url = %q", url)
	}
}

func TestS3StorageList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">
  <Name>media</Name><KeyCount>2</KeyCount><MaxKeys>1000</MaxKeys><IsTruncated>false</IsTruncated>
  <Contents><Key>a.jpg</Key><Size>4</Size></Contents>
  <Contents><Key>a-thumb.jpg</Key><Size>2</Size></Contents>
</ListBucketResult>`))
	}))
	defer srv.Close()

	s := newTestS3(t, srv, config.S3Config{Bucket: "media", Region: "eu-west-1"})
	objects, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(objects) != 2 {
		t.Fatalf("objects = %+v", objects)
	}
	if objects[0].URL != "https://media.s3.eu-west-1.amazonaws.com/a.jpg" {
		t.Fatalf("url = %q", objects[0].URL)
	}
}
