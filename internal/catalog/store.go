package catalog

import (
	"context"
	"io"
	"strconv"

	"importony_back_end/internal/database"
	"importony_back_end/internal/models"
)

// PhotoStore est la vue SQL dont la réconciliation des photos a besoin.
type PhotoStore interface {
	ListPhotos(ctx context.Context, tenant, productID string) ([]models.ProductPhoto, error)
	InsertPhoto(ctx context.Context, tenant string, photo models.ProductPhoto) error
	DeletePhoto(ctx context.Context, tenant, fotoID string) error
	SetPrincipal(ctx context.Context, tenant, fotoID string, principal bool) error
	SetLocation(ctx context.Context, tenant, fotoID, folder, url string) error
	LastPhotoCode(ctx context.Context, tenant string) (string, error)
}

// ImageStore est le contrat du stockage d'objets consommé par la
// réconciliation. services.ImageStore (MinIO) l'implémente ; les tests
// utilisent un faux en mémoire.
type ImageStore interface {
	Upload(ctx context.Context, r io.Reader, size int64, contentType, objectID, folder string) (string, error)
	Delete(ctx context.Context, objectPath string) error
	Move(ctx context.Context, oldFolder, newFolder, objectID string) (string, error)
}

// PackStore est la vue SQL de la composition des paquetes.
type PackStore interface {
	DeleteItem(ctx context.Context, tenant, itemID, packID string) error
	UpdateQuantity(ctx context.Context, tenant, itemID, packID string, cantidad int) error
	InsertItem(ctx context.Context, tenant string, item models.PackItem) error
	LastItemCode(ctx context.Context, tenant string) (string, error)
}

// ProductStore couvre les écritures sur `productos`.
type ProductStore interface {
	InsertProduct(ctx context.Context, tenant string, code string, input *models.ProductInput) error
	UpdateProduct(ctx context.Context, tenant, productID string, pairs []SetPair) (int64, error)
	LastProductCode(ctx context.Context, tenant string) (string, error)
}

// SQLStore implémente les trois vues sur les bases MySQL des tenants.
type SQLStore struct {
	DB *database.TenantManager
}

func NewSQLStore(db *database.TenantManager) *SQLStore {
	return &SQLStore{DB: db}
}

func (s *SQLStore) ListPhotos(ctx context.Context, tenant, productID string) ([]models.ProductPhoto, error) {
	rows, err := s.DB.ExecuteQuery(ctx, tenant, `
		SELECT idFoto, idProducto, url_foto, isPrincipal, rutaCloudinary, userId
		FROM fotosproductos
		WHERE idProducto = ?
		ORDER BY idFoto`, productID)
	if err != nil {
		return nil, err
	}

	photos := make([]models.ProductPhoto, 0, len(rows))
	for _, row := range rows {
		photos = append(photos, models.ProductPhoto{
			IDFoto:         asString(row["idFoto"]),
			IDProducto:     asString(row["idProducto"]),
			URLFoto:        asString(row["url_foto"]),
			IsPrincipal:    asBool(row["isPrincipal"]),
			RutaCloudinary: asString(row["rutaCloudinary"]),
			UserID:         asString(row["userId"]),
		})
	}
	return photos, nil
}

func (s *SQLStore) InsertPhoto(ctx context.Context, tenant string, photo models.ProductPhoto) error {
	_, err := s.DB.ExecuteUpdate(ctx, tenant, `
		INSERT INTO fotosproductos (idFoto, idProducto, url_foto, isPrincipal, rutaCloudinary, userId, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())`,
		photo.IDFoto, photo.IDProducto, photo.URLFoto, boolToBit(photo.IsPrincipal), photo.RutaCloudinary, photo.UserID)
	return err
}

func (s *SQLStore) DeletePhoto(ctx context.Context, tenant, fotoID string) error {
	_, err := s.DB.ExecuteUpdate(ctx, tenant,
		`DELETE FROM fotosproductos WHERE idFoto = ?`, fotoID)
	return err
}

func (s *SQLStore) SetPrincipal(ctx context.Context, tenant, fotoID string, principal bool) error {
	_, err := s.DB.ExecuteUpdate(ctx, tenant,
		`UPDATE fotosproductos SET isPrincipal = ?, updated_at = NOW() WHERE idFoto = ?`,
		boolToBit(principal), fotoID)
	return err
}

func (s *SQLStore) SetLocation(ctx context.Context, tenant, fotoID, folder, url string) error {
	_, err := s.DB.ExecuteUpdate(ctx, tenant,
		`UPDATE fotosproductos SET rutaCloudinary = ?, url_foto = ?, updated_at = NOW() WHERE idFoto = ?`,
		folder, url, fotoID)
	return err
}

func (s *SQLStore) LastPhotoCode(ctx context.Context, tenant string) (string, error) {
	return s.maxCode(ctx, tenant, `SELECT MAX(idFoto) AS ultimo FROM fotosproductos`)
}

func (s *SQLStore) DeleteItem(ctx context.Context, tenant, itemID, packID string) error {
	_, err := s.DB.ExecuteUpdate(ctx, tenant,
		`DELETE FROM productospaquete WHERE idProductoPaquete = ? AND idPaquete = ?`,
		itemID, packID)
	return err
}

func (s *SQLStore) UpdateQuantity(ctx context.Context, tenant, itemID, packID string, cantidad int) error {
	_, err := s.DB.ExecuteUpdate(ctx, tenant,
		`UPDATE productospaquete SET cantidad = ?, updated_at = NOW() WHERE idProductoPaquete = ? AND idPaquete = ?`,
		cantidad, itemID, packID)
	return err
}

func (s *SQLStore) InsertItem(ctx context.Context, tenant string, item models.PackItem) error {
	_, err := s.DB.ExecuteUpdate(ctx, tenant, `
		INSERT INTO productospaquete (idProductoPaquete, idPaquete, idProducto, cantidad, userId, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, NOW(), NOW())`,
		item.IDProductoPaquete, item.IDPaquete, item.IDProducto, item.Cantidad, item.UserID)
	return err
}

func (s *SQLStore) LastItemCode(ctx context.Context, tenant string) (string, error) {
	return s.maxCode(ctx, tenant, `SELECT MAX(idProductoPaquete) AS ultimo FROM productospaquete`)
}

func (s *SQLStore) InsertProduct(ctx context.Context, tenant string, code string, input *models.ProductInput) error {
	_, err := s.DB.ExecuteUpdate(ctx, tenant, `
		INSERT INTO productos (idProducto, idCategoria, idSubCategoria, idMarca, idColor, nombre, precio, cantidad,
			descripcion, destacado, nuevo, masVendido, activo, userId, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`,
		code, input.IDCategoria, input.IDSubCategoria, input.IDMarca, input.IDColor,
		input.Nombre, input.Precio, input.Cantidad, input.Descripcion,
		input.Destacado, input.Nuevo, input.MasVendido, input.Activo, input.UserID)
	return err
}

func (s *SQLStore) UpdateProduct(ctx context.Context, tenant, productID string, pairs []SetPair) (int64, error) {
	if len(pairs) == 0 {
		// Change-set vide : pas de UPDATE à émettre.
		return 0, nil
	}

	query := "UPDATE productos SET "
	values := make([]any, 0, len(pairs)+1)
	for i, p := range pairs {
		if i > 0 {
			query += ", "
		}
		query += p.Column + " = ?"
		values = append(values, p.Value)
	}
	query += ", updated_at = NOW() WHERE idProducto = ?"
	values = append(values, productID)

	return s.DB.ExecuteUpdate(ctx, tenant, query, values...)
}

func (s *SQLStore) LastProductCode(ctx context.Context, tenant string) (string, error) {
	return s.maxCode(ctx, tenant, `SELECT MAX(idProducto) AS ultimo FROM productos`)
}

func (s *SQLStore) maxCode(ctx context.Context, tenant, query string) (string, error) {
	rows, err := s.DB.ExecuteQuery(ctx, tenant, query)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 || rows[0]["ultimo"] == nil {
		return "", nil
	}
	return asString(rows[0]["ultimo"]), nil
}

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}

func asBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case int64:
		return t != 0
	case string:
		return t == "1" || t == "true"
	case []byte:
		return string(t) == "1" || string(t) == "true"
	default:
		return false
	}
}

func boolToBit(b bool) int {
	if b {
		return 1
	}
	return 0
}
