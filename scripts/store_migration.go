// One-off data migration from a legacy deployment into the current store.
//
// Copies every table from the source MySQL database into the target one and
// mirrors uploaded files from the legacy OSS bucket into MinIO. Row counts
// are compared per table afterwards so a partial copy is caught immediately.
//
// Usage: go run scripts/store_migration.go -config scripts/migration.yaml

package main

import (
	"context"
	"flag"
	"fmt"
	"learnhub_backend/internal/model"
	"log"
	"os"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"gopkg.in/yaml.v3"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type migrationConfig struct {
	Source struct {
		DSN          string `yaml:"dsn"`
		OSSEndpoint  string `yaml:"oss_endpoint"`
		OSSAccessKey string `yaml:"oss_access_key"`
		OSSSecretKey string `yaml:"oss_secret_key"`
		OSSBucket    string `yaml:"oss_bucket"`
	} `yaml:"source"`
	Target struct {
		DSN            string `yaml:"dsn"`
		MinioEndpoint  string `yaml:"minio_endpoint"`
		MinioAccessKey string `yaml:"minio_access_key"`
		MinioSecretKey string `yaml:"minio_secret_key"`
		MinioBucket    string `yaml:"minio_bucket"`
	} `yaml:"target"`
	BatchSize int  `yaml:"batch_size"`
	SkipFiles bool `yaml:"skip_files"`
}

func main() {
	configPath := flag.String("config", "scripts/migration.yaml", "migration config file")
	flag.Parse()

	data, err := os.ReadFile(*configPath)
	if err != nil {
		log.Fatalf("cannot read config: %v", err)
	}
	var cfg migrationConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("cannot parse config: %v", err)
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 500
	}

	source, err := openDB(cfg.Source.DSN)
	if err != nil {
		log.Fatalf("source database: %v", err)
	}
	target, err := openDB(cfg.Target.DSN)
	if err != nil {
		log.Fatalf("target database: %v", err)
	}

	if err := migrateTables(source, target, cfg.BatchSize); err != nil {
		log.Fatalf("table migration failed: %v", err)
	}

	if !cfg.SkipFiles {
		if err := migrateFiles(&cfg); err != nil {
			log.Fatalf("file migration failed: %v", err)
		}
	}

	log.Println("migration complete")
}

func openDB(dsn string) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
}

func migrateTables(source, target *gorm.DB, batchSize int) error {
	if err := target.AutoMigrate(
		&model.User{},
		&model.Subscription{},
		&model.AccessRequest{},
		&model.Course{},
		&model.Document{},
		&model.Video{},
		&model.Test{},
		&model.Question{},
		&model.TestAttempt{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}

	if err := copyTable(source, target, batchSize, "users", &[]model.User{}); err != nil {
		return err
	}
	if err := copyTable(source, target, batchSize, "subscriptions", &[]model.Subscription{}); err != nil {
		return err
	}
	if err := copyTable(source, target, batchSize, "access_requests", &[]model.AccessRequest{}); err != nil {
		return err
	}
	if err := copyTable(source, target, batchSize, "courses", &[]model.Course{}); err != nil {
		return err
	}
	if err := copyTable(source, target, batchSize, "documents", &[]model.Document{}); err != nil {
		return err
	}
	if err := copyTable(source, target, batchSize, "videos", &[]model.Video{}); err != nil {
		return err
	}
	if err := copyTable(source, target, batchSize, "tests", &[]model.Test{}); err != nil {
		return err
	}
	if err := copyTable(source, target, batchSize, "questions", &[]model.Question{}); err != nil {
		return err
	}
	if err := copyTable(source, target, batchSize, "test_attempts", &[]model.TestAttempt{}); err != nil {
		return err
	}
	return nil
}

// copyTable streams rows in primary-key batches and verifies the final count.
func copyTable(source, target *gorm.DB, batchSize int, table string, rows interface{}) error {
	result := source.Table(table).FindInBatches(rows, batchSize, func(tx *gorm.DB, batch int) error {
		if err := target.Table(table).Create(rows).Error; err != nil {
			return fmt.Errorf("%s batch %d: %w", table, batch, err)
		}
		log.Printf("%s: copied batch %d", table, batch)
		return nil
	})
	if result.Error != nil {
		return result.Error
	}

	var sourceCount, targetCount int64
	if err := source.Table(table).Count(&sourceCount).Error; err != nil {
		return err
	}
	if err := target.Table(table).Count(&targetCount).Error; err != nil {
		return err
	}
	if sourceCount != targetCount {
		return fmt.Errorf("%s: source has %d rows, target has %d", table, sourceCount, targetCount)
	}
	log.Printf("%s: %d rows verified", table, targetCount)
	return nil
}

func migrateFiles(cfg *migrationConfig) error {
	ctx := context.Background()

	ossClient, err := oss.New(cfg.Source.OSSEndpoint, cfg.Source.OSSAccessKey, cfg.Source.OSSSecretKey)
	if err != nil {
		return fmt.Errorf("oss client: %w", err)
	}
	bucket, err := ossClient.Bucket(cfg.Source.OSSBucket)
	if err != nil {
		return fmt.Errorf("oss bucket: %w", err)
	}

	minioClient, err := minio.New(cfg.Target.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Target.MinioAccessKey, cfg.Target.MinioSecretKey, ""),
		Secure: false,
	})
	if err != nil {
		return fmt.Errorf("minio client: %w", err)
	}

	exists, err := minioClient.BucketExists(ctx, cfg.Target.MinioBucket)
	if err != nil {
		return err
	}
	if !exists {
		if err := minioClient.MakeBucket(ctx, cfg.Target.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return err
		}
	}

	copied := 0
	marker := ""
	for {
		list, err := bucket.ListObjects(oss.Marker(marker))
		if err != nil {
			return fmt.Errorf("listing objects: %w", err)
		}
		for _, object := range list.Objects {
			body, err := bucket.GetObject(object.Key)
			if err != nil {
				return fmt.Errorf("get %s: %w", object.Key, err)
			}
			_, err = minioClient.PutObject(ctx, cfg.Target.MinioBucket, object.Key, body, object.Size, minio.PutObjectOptions{})
			body.Close()
			if err != nil {
				return fmt.Errorf("put %s: %w", object.Key, err)
			}
			copied++
		}
		if !list.IsTruncated {
			break
		}
		marker = list.NextMarker
	}

	log.Printf("files: %d objects copied", copied)
	return nil
}
