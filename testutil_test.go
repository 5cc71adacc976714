package formrec

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// fakeFetch is one scripted response to a status check.
type fakeFetch struct {
	code       int
	retryAfter string
	body       string
}

// fakeAnalyzeService is a scripted in-process stand-in for the Forms API.
// Initiate requests return the configured Operation-Location; fetch requests
// consume the scripted responses in order, repeating the last one.
type fakeAnalyzeService struct {
	mu           sync.Mutex
	location     string
	initiateCode int
	responses    []fakeFetch

	initiates    int
	fetches      int
	initiatePath string
	initiateBody []byte
	initiateReq  *http.Request
	fetchPaths   []string
}

func newFakeAnalyzeService(location string, responses ...fakeFetch) *fakeAnalyzeService {
	return &fakeAnalyzeService{
		location:     location,
		initiateCode: http.StatusAccepted,
		responses:    responses,
	}
}

func (f *fakeAnalyzeService) start() *httptest.Server {
	r := chi.NewRouter()
	r.Post("/v2/{kind}/analyze", f.handleInitiate)
	r.Post("/v2/models/{modelID}/analyze", f.handleInitiate)
	r.Get("/v2/{kind}/analyzeResults/{resultID}", f.handleFetch)
	r.Get("/v2/models/{modelID}/analyzeResults/{resultID}", f.handleFetch)
	return httptest.NewServer(r)
}

func (f *fakeAnalyzeService) handleInitiate(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.initiates++
	f.initiatePath = r.URL.Path
	f.initiateReq = r
	f.initiateBody, _ = io.ReadAll(r.Body)
	if f.location != "" {
		w.Header().Set("Operation-Location", f.location)
	}
	w.WriteHeader(f.initiateCode)
}

func (f *fakeAnalyzeService) handleFetch(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchPaths = append(f.fetchPaths, r.URL.Path)
	index := f.fetches
	f.fetches++
	if len(f.responses) == 0 {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if index >= len(f.responses) {
		index = len(f.responses) - 1
	}
	resp := f.responses[index]
	if resp.retryAfter != "" {
		w.Header().Set("Retry-After", resp.retryAfter)
	}
	code := resp.code
	if code == 0 {
		code = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(resp.body))
}

func (f *fakeAnalyzeService) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

func (f *fakeAnalyzeService) initiateCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.initiates
}

const (
	runningBody   = `{"status":"running"}`
	failedBody    = `{"status":"failed","error":{"code":"InvalidImage","message":"the image is corrupt"}}`
	succeededBody = `{"status":"succeeded","analyzeResult":{"version":"2.1.0","readResults":[{"page":1,"width":8.5,"height":11,"unit":"inch","lines":[{"text":"Total $42.00","boundingBox":[1,2,3,4,5,6,7,8],"words":[{"text":"Total","boundingBox":[1,2,3,4,5,6,7,8],"confidence":0.99},{"text":"$42.00","boundingBox":[1,2,3,4,5,6,7,8],"confidence":0.97}]}]}]}}`
)

// pdfSample carries the PDF magic number so content-type sniffing resolves
// without an explicit option.
var pdfSample = []byte("%PDF-1.7\n1 0 obj\n<<>>\nendobj\n")

func newTestClient(t *testing.T, endpoint string, opts ...ClientOption) *Client {
	t.Helper()
	cred, err := NewKeyCredential("test-key")
	if err != nil {
		t.Fatal(err)
	}
	client, err := NewClient(endpoint, cred, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return client
}
