// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package s3

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	awsx "github.com/refdiff/refdiff/internal/aws"
	"github.com/refdiff/refdiff/internal/cacheutil"
	"github.com/refdiff/refdiff/internal/config"
	"github.com/refdiff/refdiff/internal/corpus"
	"github.com/refdiff/refdiff/internal/log"
)

// StoreS3 serves corpora from an s3://bucket/prefix root laid out the same way
// as a local root: one "directory" of *.txt objects per version, or packed
// <id>.json / <id>.json.enc snapshot objects at the top level.
type StoreS3 struct {
	Bucket     string
	Prefix     string
	Passphrase corpus.PassphraseFunc

	client *s3v2.Client
}

// NewStoreS3 parses an s3://bucket/prefix root and builds the S3 client.
// Region and profile come from the regular AWS config chain, with optional
// overrides from the aws.region and aws.profile config keys.
func NewStoreS3(ctx context.Context, root string, passphrase corpus.PassphraseFunc) (*StoreS3, error) {
	bucket, prefix, err := splitRoot(root)
	if err != nil {
		return nil, err
	}

	var cfgOpts []awsx.Option
	if profile, _ := config.GetString("aws.profile", ""); profile != "" {
		cfgOpts = append(cfgOpts, awsx.WithProfile(profile))
	}
	if region, _ := config.GetString("aws.region", ""); region != "" {
		cfgOpts = append(cfgOpts, awsx.WithRegion(region))
	}

	cfg, err := awsx.LoadAWSConfig(ctx, cfgOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	hours, _ := config.GetInt("cache.purge-hours", 72)
	if err := cacheutil.Purge(hours); err != nil {
		log.WithError(err).Warn("failed to purge cache")
	}

	return &StoreS3{
		Bucket:     bucket,
		Prefix:     prefix,
		Passphrase: passphrase,
		client:     awsx.NewS3(cfg),
	}, nil
}

// Versions implements store.Store. One paginated list covers every version:
// objects are grouped by the first path segment below the prefix, so a version
// directory's entry count and newest object fall out of the same pass.
func (st *StoreS3) Versions(ctx context.Context) ([]corpus.Version, error) {
	objects, err := st.list(ctx, st.Prefix)
	if err != nil {
		return nil, err
	}

	grouped := map[string]*corpus.Version{}
	for _, obj := range objects {
		if obj.Key == nil {
			continue
		}

		rel := strings.TrimPrefix(*obj.Key, st.Prefix)
		rel = strings.TrimPrefix(rel, "/")

		id, isEntry := groupKey(rel)
		if id == "" {
			continue
		}

		number, err := corpus.ParseNumber(id)
		if err != nil {
			log.Debugf("skipping %s: %v", *obj.Key, err)
			continue
		}

		v, ok := grouped[id]
		if !ok {
			v = &corpus.Version{ID: id, Number: number}
			grouped[id] = v
		}
		if isEntry && strings.HasSuffix(rel, ".txt") {
			v.Entries++
		}
		if obj.LastModified != nil && obj.LastModified.After(v.Updated) {
			v.Updated = *obj.LastModified
		}
	}

	versions := make([]corpus.Version, 0, len(grouped))
	for _, v := range grouped {
		versions = append(versions, *v)
	}
	corpus.SortVersions(versions)
	return versions, nil
}

// Load implements store.Store. As with the local store, a version directory
// wins over a packed snapshot of the same id.
func (st *StoreS3) Load(ctx context.Context, id string) (corpus.Corpus, error) {
	dirPrefix := path.Join(st.Prefix, id) + "/"
	objects, err := st.list(ctx, dirPrefix)
	if err != nil {
		return nil, err
	}

	if len(objects) > 0 {
		return st.loadDir(ctx, id, dirPrefix, objects)
	}

	for _, ext := range []string{".json", ".json.enc"} {
		key := path.Join(st.Prefix, id+ext)
		data, err := st.get(ctx, key, "")
		if err != nil {
			continue
		}
		return corpus.UnpackSnapshot(data, st.Passphrase)
	}

	return nil, corpus.NotFoundError{ID: id}
}

func (st *StoreS3) String() string {
	return "s3://" + path.Join(st.Bucket, st.Prefix)
}

func (st *StoreS3) loadDir(ctx context.Context, id, dirPrefix string, objects []types.Object) (corpus.Corpus, error) {
	c := corpus.Corpus{}
	for _, obj := range objects {
		if obj.Key == nil || !strings.HasSuffix(*obj.Key, ".txt") {
			continue
		}

		var etag string
		if obj.ETag != nil {
			etag = *obj.ETag
		}
		body, err := st.get(ctx, *obj.Key, etag)
		if err != nil {
			return nil, corpus.IOError{ID: id, Entry: path.Base(*obj.Key), Err: err}
		}

		name := strings.TrimSuffix(strings.TrimPrefix(*obj.Key, dirPrefix), ".txt")
		c[name] = string(body)
	}

	if len(c) == 0 {
		return nil, corpus.NotFoundError{ID: id}
	}
	return c, nil
}

// list returns every object under prefix, following pagination.
func (st *StoreS3) list(ctx context.Context, prefix string) ([]types.Object, error) {
	paginator := s3v2.NewListObjectsV2Paginator(st.client, &s3v2.ListObjectsV2Input{
		Bucket: awsv2.String(st.Bucket),
		Prefix: awsv2.String(prefix),
	})

	var objects []types.Object
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		objects = append(objects, page.Contents...)
	}
	return objects, nil
}

// get fetches one object body, reading through the cache when an etag is
// available to key it by.
func (st *StoreS3) get(ctx context.Context, key, etag string) ([]byte, error) {
	cacheKey := st.Bucket + "/" + key + "@" + etag
	if etag != "" {
		if entry, ok := cacheutil.Read([]string{"s3", st.Bucket}, cacheKey); ok {
			return entry.Data, nil
		}
	}

	result, err := st.client.GetObject(ctx, &s3v2.GetObjectInput{
		Bucket: awsv2.String(st.Bucket),
		Key:    awsv2.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get S3 object: %w", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read S3 object body: %w", err)
	}

	if etag != "" {
		if err := cacheutil.Write([]string{"s3", st.Bucket}, cacheKey, data); err != nil {
			log.WithError(err).Error("error writing to cache")
		}
	}
	return data, nil
}

// splitRoot breaks s3://bucket/prefix into its parts.
func splitRoot(root string) (string, string, error) {
	trimmed := strings.TrimPrefix(root, "s3://")
	if trimmed == root || trimmed == "" {
		return "", "", fmt.Errorf("invalid s3 root: %s", root)
	}
	bucket, prefix, _ := strings.Cut(trimmed, "/")
	return bucket, strings.TrimSuffix(prefix, "/"), nil
}

// groupKey maps an object path relative to the root onto its version id.
// "postgres_10/ABORT.txt" yields (postgres_10, true); "postgres_11.json"
// yields (postgres_11, false); anything else yields "".
func groupKey(rel string) (string, bool) {
	if id, _, found := strings.Cut(rel, "/"); found {
		if id == "" {
			return "", false
		}
		return id, true
	}
	switch {
	case strings.HasSuffix(rel, ".json.enc"):
		return strings.TrimSuffix(rel, ".json.enc"), false
	case strings.HasSuffix(rel, ".json"):
		return strings.TrimSuffix(rel, ".json"), false
	default:
		return "", false
	}
}
