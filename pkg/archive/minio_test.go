package archive

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const testBucket = "palisade"

// fakeObjectStore fakes the object storage api surface the archive uses:
// put, stat, get, and remove on path-style keys under one bucket.
type fakeObjectStore struct {
	t       *testing.T
	objects map[string][]byte
}

func (f *fakeObjectStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {

	key := strings.TrimPrefix(r.URL.Path, "/"+testBucket+"/")

	switch r.Method {
	case http.MethodPut:
		body, err := io.ReadAll(r.Body)
		if err != nil {
			f.t.Errorf("failed to read put body: %v", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		// over plain http the client signs uploads with the streaming v4
		// scheme, framing the payload as aws-chunked; unwrap it like a real
		// object store would before persisting.
		if strings.HasPrefix(r.Header.Get("X-Amz-Content-Sha256"), "STREAMING-") {
			body, err = decodeAwsChunked(body)
			if err != nil {
				f.t.Errorf("failed to decode aws-chunked body: %v", err)
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
		}
		f.objects[key] = body
		w.Header().Set("ETag", `"fake-etag"`)
		w.WriteHeader(http.StatusOK)

	case http.MethodHead:
		pem, ok := f.objects[key]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
		w.Header().Set("ETag", `"fake-etag"`)
		w.Header().Set("Content-Type", "application/x-pem-file")
		w.Header().Set("Content-Length", strconv.Itoa(len(pem)))
		w.WriteHeader(http.StatusOK)

	case http.MethodGet:
		pem, ok := f.objects[key]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
		w.Header().Set("ETag", `"fake-etag"`)
		w.Write(pem)

	case http.MethodDelete:
		delete(f.objects, key)
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// decodeAwsChunked strips the aws-chunked framing used by streaming v4
// signatures: repeated "<hex-size>;chunk-signature=<sig>\r\n<data>\r\n"
// segments terminated by a zero-size chunk.
func decodeAwsChunked(body []byte) ([]byte, error) {
	var payload []byte
	rest := body
	for {
		header, after, found := strings.Cut(string(rest), "\r\n")
		if !found {
			return nil, fmt.Errorf("missing chunk header terminator")
		}
		sizeHex, _, _ := strings.Cut(header, ";")
		size, err := strconv.ParseInt(sizeHex, 16, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid chunk size %q: %v", sizeHex, err)
		}
		if size == 0 {
			return payload, nil
		}
		if int64(len(after)) < size {
			return nil, fmt.Errorf("chunk shorter than declared size %d", size)
		}
		payload = append(payload, after[:size]...)
		rest = []byte(strings.TrimPrefix(after[size:], "\r\n"))
	}
}

func newTestArchive(t *testing.T) (*minioArchive, *fakeObjectStore, *httptest.Server) {
	t.Helper()

	store := &fakeObjectStore{t: t, objects: make(map[string][]byte)}
	server := httptest.NewServer(store)

	endpoint := strings.TrimPrefix(server.URL, "http://")
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4("access", "secret", ""),
		Secure: false,
		Region: "us-east-1",
	})
	if err != nil {
		t.Fatalf("failed to create minio client: %v", err)
	}

	return newMinioArchive(client, testBucket), store, server
}

func TestPutBundle(t *testing.T) {

	arc, store, server := newTestArchive(t)
	defer server.Close()

	bundle := &Bundle{
		SerialNumber: "17:67:16:b0",
		Pem:          "-----BEGIN CERTIFICATE-----\nleaf\n-----END CERTIFICATE-----\n",
	}

	if err := arc.PutBundle(bundle); err != nil {
		t.Fatalf("failed to archive bundle: %v", err)
	}

	stored, ok := store.objects["issued/17-67-16-b0.pem"]
	if !ok {
		t.Fatalf("bundle not stored under serial-derived key, got keys %v", store.objects)
	}
	if string(stored) != bundle.Pem {
		t.Errorf("stored pem does not match bundle pem: %q", stored)
	}
}

func TestPutBundleNil(t *testing.T) {

	arc, _, server := newTestArchive(t)
	defer server.Close()

	if err := arc.PutBundle(nil); err == nil {
		t.Error("expected error for nil bundle")
	}
}

func TestGetBundle(t *testing.T) {

	arc, store, server := newTestArchive(t)
	defer server.Close()

	pem := "-----BEGIN CERTIFICATE-----\nleaf\n-----END CERTIFICATE-----\n"
	store.objects["issued/17-67-16-b0.pem"] = []byte(pem)

	bundle, err := arc.GetBundle("17:67:16:b0")
	if err != nil {
		t.Fatalf("failed to get archived bundle: %v", err)
	}

	if bundle.SerialNumber != "17:67:16:b0" {
		t.Errorf("unexpected serial number: %s", bundle.SerialNumber)
	}
	if bundle.Pem != pem {
		t.Errorf("unexpected pem: %q", bundle.Pem)
	}
}

func TestGetBundleMissing(t *testing.T) {

	arc, _, server := newTestArchive(t)
	defer server.Close()

	_, err := arc.GetBundle("ff:ff:ff:ff")
	if err == nil {
		t.Fatal("expected error for unarchived serial")
	}
	if !strings.Contains(err.Error(), "no bundle archived") {
		t.Errorf("expected a no-bundle error, got %v", err)
	}
}

func TestRemoveBundle(t *testing.T) {

	arc, store, server := newTestArchive(t)
	defer server.Close()

	store.objects["issued/17-67-16-b0.pem"] = []byte("pem")

	if err := arc.RemoveBundle("17:67:16:b0"); err != nil {
		t.Fatalf("failed to remove archived bundle: %v", err)
	}

	if _, ok := store.objects["issued/17-67-16-b0.pem"]; ok {
		t.Error("bundle still present after removal")
	}
}
