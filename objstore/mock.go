package objstore

import (
	"bytes"
	"io"
	"sort"
	"strings"
	"sync"
)

// MockClient is an in-memory Client for tests.
// It remembers the content type supplied with each Put so tests can assert on it.
type MockClient struct {
	mu           sync.Mutex
	objects      map[string][]byte
	contentTypes map[string]string
	PutCount     int
	FailPutKeys  map[string]error // optional per-key errors to simulate upload failures.
	FailGetKeys  map[string]error
}

func NewMockClient() *MockClient {
	return &MockClient{
		objects:      make(map[string][]byte),
		contentTypes: make(map[string]string),
		FailPutKeys:  make(map[string]error),
		FailGetKeys:  make(map[string]error),
	}
}

func (m *MockClient) List(key string) (keys []string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.objects {
		if strings.HasPrefix(k, key) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MockClient) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.FailGetKeys[key]; ok {
		return nil, err
	}
	data, ok := m.objects[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return data, nil
}

func (m *MockClient) Put(key string, data []byte, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.FailPutKeys[key]; ok {
		return err
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	m.objects[key] = cp
	m.contentTypes[key] = contentType
	m.PutCount++
	return nil
}

func (m *MockClient) BufferPut(key string, buf io.ReadSeeker, contentType string) error {
	b := &bytes.Buffer{}
	if _, err := io.Copy(b, buf); err != nil {
		return err
	}
	return m.Put(key, b.Bytes(), contentType)
}

func (m *MockClient) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	delete(m.contentTypes, key)
	return nil
}

func (m *MockClient) Move(src, dst string) error {
	data, err := m.Get(src)
	if err != nil {
		return err
	}
	if err := m.Put(dst, data, m.GetContentType(src)); err != nil {
		return err
	}
	return m.Delete(src)
}

// GetContentType returns the content type recorded for key, or empty string.
func (m *MockClient) GetContentType(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.contentTypes[key]
}
