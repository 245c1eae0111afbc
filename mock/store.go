package mock

import "github.com/fwojciec/pinemd"

var _ pinemd.CacheStore = (*CacheStore)(nil)

// CacheStore is a mock implementation of pinemd.CacheStore.
type CacheStore struct {
	LoadFn func(chapter *pinemd.Chapter) ([]byte, error)
	SaveFn func(chapter *pinemd.Chapter, raw []byte) error
}

func (s *CacheStore) Load(chapter *pinemd.Chapter) ([]byte, error) {
	return s.LoadFn(chapter)
}

func (s *CacheStore) Save(chapter *pinemd.Chapter, raw []byte) error {
	return s.SaveFn(chapter, raw)
}
