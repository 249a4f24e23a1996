package controllers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"strings"

	"Yatube/utils/fileformat"

	aws2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
)

// Post images live under this prefix in the bucket; avatars under their own.
const (
	postImagePrefix  = "posts/"
	avatarPrefix     = "UserProfilePics/"
	maxPostImageSize = 2 << 20 // 2MB
	maxAvatarSize    = 512_000 // 500KB
)

var errNotAnImage = errors.New("uploaded file is not an image")

// uploadPostImage stores a submitted post image in S3 and returns the object
// key. Requests without an image file are not an error: updated reports
// whether anything was uploaded.
func (server *Server) uploadPostImage(c *gin.Context) (path string, updated bool, err error) {
	file, err := c.FormFile("image")
	if err != nil {
		// Plain form posts carry no file at all.
		return "", false, nil
	}
	key, err := server.uploadFormImage(file, postImagePrefix, maxPostImageSize)
	if err != nil {
		return "", false, err
	}
	return key, true, nil
}

// uploadFormImage pushes one multipart file to S3 under the given prefix and
// returns the object key.
func (server *Server) uploadFormImage(file *multipart.FileHeader, prefix string, maxSize int64) (string, error) {
	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	size := file.Size
	if size > maxSize {
		return "", errors.New("image too large")
	}

	buf := make([]byte, size)
	if _, err := io.ReadFull(f, buf); err != nil {
		return "", err
	}
	fileType := http.DetectContentType(buf)
	if !strings.HasPrefix(fileType, "image/") {
		return "", errNotAnImage
	}

	key := prefix + fileformat.UniqueFormat(file.Filename)

	// Determine bucket name, stripping any accidental path suffix
	rawBucket := os.Getenv("S3_BUCKET")
	bucketName := strings.SplitN(rawBucket, "/", 2)[0]
	if bucketName == "" {
		log.Printf("S3_BUCKET env var is empty or invalid: '%s'", rawBucket)
		return "", errors.New("image storage is not configured")
	}

	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-2"
	}
	cfg, err := config.LoadDefaultConfig(
		context.TODO(),
		config.WithRegion(region),
	)
	if err != nil {
		log.Printf("AWS config load error: %v", err)
		return "", err
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	_, err = s3Client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:        aws2.String(bucketName),
		Key:           aws2.String(key),
		Body:          bytes.NewReader(buf),
		ContentLength: aws2.Int64(size),
		ContentType:   aws2.String(fileType),
	})
	if err != nil {
		log.Printf("S3 upload failed: %v", err)
		return "", err
	}

	return key, nil
}
