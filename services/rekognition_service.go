package services

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

type RekognitionService struct {
	client *rekognition.Client
}

func NewRekognitionService() (*RekognitionService, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, err
	}
	return &RekognitionService{client: rekognition.NewFromConfig(cfg)}, nil
}

// RecognizeFood detects labels in a base64-encoded meal photo. The highest-
// confidence label becomes the candidate food name; the rest are treated as
// ingredient hints for the resolver.
func (r *RekognitionService) RecognizeFood(ctx context.Context, base64Img string) (string, []string, error) {
	if !strings.HasPrefix(base64Img, "data:image") {
		return "", nil, errors.New("invalid data URI")
	}
	comma := strings.Index(base64Img, ",")
	if comma < 0 {
		return "", nil, errors.New("invalid data URI")
	}
	data, err := base64.StdEncoding.DecodeString(base64Img[comma+1:])
	if err != nil {
		return "", nil, err
	}

	out, err := r.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: data},
		MaxLabels:     aws.Int32(8),
		MinConfidence: aws.Float32(75),
	})
	if err != nil {
		return "", nil, err
	}

	var labels []string
	for _, l := range out.Labels {
		if l.Name == nil {
			continue
		}
		name := strings.ToLower(*l.Name)
		// Rekognition emits generic container labels for any food photo.
		if name == "food" || name == "meal" || name == "dish" || name == "plate" {
			continue
		}
		labels = append(labels, name)
	}
	if len(labels) == 0 {
		return "", nil, errors.New("no food labels detected")
	}
	return labels[0], labels[1:], nil
}
