package objstore

import (
	"bytes"
	"io"
	"io/ioutil"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// StoreConfig holds the per-tier connection settings.
// Endpoint may point at any S3 compatible service (MinIO included); leave it
// empty to use the default AWS endpoint for the region.
type StoreConfig struct {
	Endpoint        string
	Region          string `errorTxt:"bucket region" mandatory:"yes"`
	Bucket          string `errorTxt:"bucket name" mandatory:"yes"`
	Prefix          string `errorTxt:"bucket prefix"`
	AccessKeyId     string
	SecretAccessKey string
	NameTemplate    string `errorTxt:"object name template"`
}

func NewBasicClient(cfg *StoreConfig) BasicClient {
	awsConfig := aws.NewConfig()
	awsConfig.Region = aws.String(cfg.Region)
	if cfg.Endpoint != "" { // if we are targeting an S3 compatible service like MinIO...
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true) // MinIO buckets are path addressed.
	}
	if cfg.AccessKeyId != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.AccessKeyId, cfg.SecretAccessKey, "")
	}
	sess := session.Must(session.NewSession(awsConfig))
	api := s3.New(sess)

	return &basicClient{
		bucket: cfg.Bucket,
		region: cfg.Region,
		prefix: cfg.Prefix,
		api:    api,
	}
}

func NewBasicClientWithAPI(cfg *StoreConfig, api s3iface.S3API) BasicClient {
	return &basicClient{
		bucket: cfg.Bucket,
		region: cfg.Region,
		prefix: cfg.Prefix,
		api:    api,
	}
}

type basicClient struct {
	region string
	bucket string
	prefix string
	api    s3iface.S3API
}

func (s *basicClient) List(key string) (keys []string, err error) {
	keys = make([]string, 0, 1000)
	lastKey := ""
	for {
		params := &s3.ListObjectsInput{
			Bucket:  aws.String(s.bucket),
			Marker:  aws.String(lastKey),
			MaxKeys: aws.Int64(1000),
			Prefix:  aws.String(s.getKeyWithPrefix(key)),
		}
		resp, err := s.api.ListObjects(params)
		if err != nil {
			return nil, err
		}

		for _, v := range resp.Contents {
			keys = append(keys, *v.Key)
		}
		if len(keys) > 0 {
			lastKey = keys[len(keys)-1]
		}

		if *resp.IsTruncated == false {
			break
		}
	}
	return
}

func (s *basicClient) Get(key string) ([]byte, error) {
	res, err := s.api.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.getKeyWithPrefix(key)),
	})

	if err != nil {
		awsErr := err.(awserr.Error)
		if awsErr.Code() == s3.ErrCodeNoSuchKey {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}

	defer res.Body.Close()

	return ioutil.ReadAll(res.Body)
}

func (s *basicClient) Put(key string, data []byte, contentType string) error {
	dataBuf := bytes.NewReader(data)
	return s.BufferPut(key, dataBuf, contentType)
}

func (s *basicClient) BufferPut(key string, dataBuf io.ReadSeeker, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.getKeyWithPrefix(key)),
		Body:   dataBuf,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	_, err := s.api.PutObject(input)

	return err
}

func (s *basicClient) Delete(key string) error {
	_, err := s.api.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.getKeyWithPrefix(key)),
	})
	return err
}

func (s *basicClient) getKeyWithPrefix(key string) string {
	if s.prefix != "" {
		return strings.TrimRight(s.prefix, "/") + "/" + key // ensure trailing slash after prefix.
	} else {
		return key
	}
}
