package objstore

import "github.com/medbridge/edgepipe/constants"

func NewClient(cfg *StoreConfig) Client {
	basicClient := NewBasicClient(cfg)
	return NewClientFromBasic(basicClient)
}

func NewClientFromBasic(basicClient BasicClient) Client {
	return &client{
		BasicClient: basicClient,
	}
}

type client struct {
	BasicClient
}

func (s *client) Move(src, dst string) error {
	data, err := s.Get(src)
	if err != nil {
		return err
	}

	err = s.Put(dst, data, constants.ContentTypeOctetStream)
	if err != nil {
		return err
	}

	return s.Delete(src)
}
