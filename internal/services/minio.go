package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"importony_back_end/internal/metrics"
)

// ImageStore encapsule le stockage d'objets MinIO pour les photos produits.
// Convention d'adressage : <dossier>/<idObjet>, où le dossier est
// typiquement <tenant>/<categoria>/<subCategoria>.
type ImageStore struct {
	client   *minio.Client
	bucket   string
	endpoint string
	secure   bool
}

var Images *ImageStore

// ConnectMinio initialise le client MinIO depuis l'environnement et
// s'assure que le bucket existe.
func ConnectMinio(ctx context.Context) error {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")
	bucket := os.Getenv("MINIO_BUCKET")
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return fmt.Errorf("erreur connexion MinIO: %v", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("erreur vérification bucket MinIO: %v", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("erreur création bucket MinIO: %v", err)
		}
		log.Println("🪣 Bucket créé :", bucket)
	}

	Images = &ImageStore{client: client, bucket: bucket, endpoint: endpoint, secure: useSSL}
	log.Println("✅ Connecté à MinIO :", endpoint)
	return nil
}

// Upload envoie une image sous <dossier>/<idObjet> et retourne son URL
// publique.
func (s *ImageStore) Upload(ctx context.Context, r io.Reader, size int64, contentType, objectID, folder string) (string, error) {
	key := folder + "/" + objectID

	_, err := s.client.PutObject(ctx, s.bucket, key, r, size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		metrics.RecordBlobOperation("upload", "error")
		return "", fmt.Errorf("erreur upload MinIO (%s): %v", key, err)
	}

	metrics.RecordBlobOperation("upload", "ok")
	return s.objectURL(key), nil
}

// Delete supprime l'objet désigné par son chemin complet <dossier>/<idObjet>.
func (s *ImageStore) Delete(ctx context.Context, objectPath string) error {
	err := s.client.RemoveObject(ctx, s.bucket, objectPath, minio.RemoveObjectOptions{})
	if err != nil {
		metrics.RecordBlobOperation("delete", "error")
		return fmt.Errorf("erreur suppression MinIO (%s): %v", objectPath, err)
	}
	metrics.RecordBlobOperation("delete", "ok")
	return nil
}

// Move déplace un objet d'un dossier vers un autre et retourne la nouvelle
// URL. MinIO n'a pas de rename : copie puis suppression de l'original.
func (s *ImageStore) Move(ctx context.Context, oldFolder, newFolder, objectID string) (string, error) {
	oldKey := oldFolder + "/" + objectID
	newKey := newFolder + "/" + objectID

	src := minio.CopySrcOptions{Bucket: s.bucket, Object: oldKey}
	dst := minio.CopyDestOptions{Bucket: s.bucket, Object: newKey}

	if _, err := s.client.CopyObject(ctx, dst, src); err != nil {
		metrics.RecordBlobOperation("move", "error")
		return "", fmt.Errorf("erreur copie MinIO (%s → %s): %v", oldKey, newKey, err)
	}
	if err := s.client.RemoveObject(ctx, s.bucket, oldKey, minio.RemoveObjectOptions{}); err != nil {
		metrics.RecordBlobOperation("move", "error")
		return "", fmt.Errorf("erreur suppression de l'original MinIO (%s): %v", oldKey, err)
	}

	metrics.RecordBlobOperation("move", "ok")
	return s.objectURL(newKey), nil
}

func (s *ImageStore) objectURL(key string) string {
	scheme := "http"
	if s.secure {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, key)
}
