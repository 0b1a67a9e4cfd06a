package catalog

import (
	"context"
	"errors"

	"importony_back_end/internal/models"
	"importony_back_end/internal/utils"
)

const firstPackItemCode = "PRPQ0000"

// PackSync applique les diffs de composition d'un produit "paquete".
// Les trois listes viennent telles quelles de l'appelant : suppressions,
// puis mises à jour de quantité, puis ajouts. Chaque élément est traité
// indépendamment — l'échec de l'un n'empêche pas de tenter les suivants,
// et il n'y a ni rollback ni lot atomique.
type PackSync struct {
	db PackStore
}

func NewPackSync(db PackStore) *PackSync {
	return &PackSync{db: db}
}

func (s *PackSync) Sync(ctx context.Context, tenant, packID string,
	removed []models.PackItemRemove, updated []models.PackItemUpdate,
	added []models.PackItemAdd, userID string) error {

	var errs []error

	for _, item := range removed {
		pack := item.IDPaquete
		if pack == "" {
			pack = packID
		}
		if err := s.db.DeleteItem(ctx, tenant, item.IDProductoPaquete, pack); err != nil {
			errs = append(errs, err)
		}
	}

	for _, item := range updated {
		pack := item.IDPaquete
		if pack == "" {
			pack = packID
		}
		if err := s.db.UpdateQuantity(ctx, tenant, item.IDProductoPaquete, pack, item.Cantidad); err != nil {
			errs = append(errs, err)
		}
	}

	if len(added) > 0 {
		code, err := s.db.LastItemCode(ctx, tenant)
		if err != nil {
			return errors.Join(append(errs, err)...)
		}
		if code == "" {
			code = firstPackItemCode
		}

		for _, item := range added {
			code = utils.NextCode(code)
			row := models.PackItem{
				IDProductoPaquete: code,
				IDPaquete:         packID,
				IDProducto:        item.IDProducto,
				Cantidad:          item.Cantidad,
				UserID:            userID,
			}
			if err := s.db.InsertItem(ctx, tenant, row); err != nil {
				errs = append(errs, err)
			}
		}
	}

	return errors.Join(errs...)
}
