package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/BruksfildServices01/agenda-core/internal/models"
)

// ======================================================
// S3 EXPORTER
// ======================================================

// S3Exporter publica relatórios CSV de agendamentos em um bucket.
type S3Exporter struct {
	client *s3.Client
	bucket string
}

func NewS3Exporter(region, accessKey, secretKey, bucket string) *S3Exporter {
	client := s3.New(s3.Options{
		Region: region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
	})

	return &S3Exporter{client: client, bucket: bucket}
}

func (e *S3Exporter) Export(
	ctx context.Context,
	name string,
	appointments []models.Appointment,
) (string, error) {

	body, err := renderCSV(appointments)
	if err != nil {
		return "", err
	}

	key := "reports/" + name
	_, err = e.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		return "", fmt.Errorf("s3: upload do relatório: %w", err)
	}

	return fmt.Sprintf("s3://%s/%s", e.bucket, key), nil
}

func renderCSV(appointments []models.Appointment) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"public_id", "customer", "service", "staff",
		"start_time", "end_time", "status", "price", "deposit_amount",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for i := range appointments {
		ap := &appointments[i]
		row := []string{
			ap.PublicID,
			ap.Customer.Name,
			ap.Service.Name,
			ap.Staff.Name,
			ap.StartTime.Format("2006-01-02 15:04"),
			ap.EndTime.Format("2006-01-02 15:04"),
			ap.Status,
			strconv.FormatFloat(ap.Price, 'f', 2, 64),
			strconv.FormatFloat(ap.DepositAmount, 'f', 2, 64),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
