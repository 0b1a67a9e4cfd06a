package catalog

import (
	"context"
	"sync"

	"importony_back_end/internal/models"
	"importony_back_end/internal/utils"
)

const firstProductCode = "PROD0000"

// Service orchestre les mutations du catalogue d'un tenant : création et
// mise à jour de produits, avec réconciliation des photos et de la
// composition des paquetes.
type Service struct {
	products ProductStore
	photos   *PhotoReconciler
	packs    *PackSync

	// Sérialise l'allocation "lire le max puis incrémenter" par tenant à
	// l'intérieur du processus. Entre plusieurs processus la course
	// subsiste et remonte comme violation d'unicité MySQL.
	allocMu sync.Mutex
	allocs  map[string]*sync.Mutex
}

func NewService(products ProductStore, photos *PhotoReconciler, packs *PackSync) *Service {
	return &Service{
		products: products,
		photos:   photos,
		packs:    packs,
		allocs:   make(map[string]*sync.Mutex),
	}
}

func (s *Service) tenantLock(tenant string) *sync.Mutex {
	s.allocMu.Lock()
	defer s.allocMu.Unlock()

	mu, ok := s.allocs[tenant]
	if !ok {
		mu = &sync.Mutex{}
		s.allocs[tenant] = mu
	}
	return mu
}

// CreateProduct insère un nouveau produit sous le prochain code PROD, puis
// envoie ses photos dans <tenant>/<categoria>/<subCategoria> et applique
// les ajouts de composition si le produit est un paquete. Le journal des
// actions photos est retourné avec le code créé.
func (s *Service) CreateProduct(ctx context.Context, tenant string, input *models.ProductInput,
	files []models.ImageUpload, packAdds []models.PackItemAdd) (string, *Journal, error) {

	mu := s.tenantLock(tenant)
	mu.Lock()
	last, err := s.products.LastProductCode(ctx, tenant)
	if err != nil {
		mu.Unlock()
		return "", nil, err
	}
	if last == "" {
		last = firstProductCode
	}
	code := utils.NextCode(last)

	if err := s.products.InsertProduct(ctx, tenant, code, input); err != nil {
		mu.Unlock()
		return "", nil, err
	}
	mu.Unlock()

	folder := tenant + "/" + input.Categoria + "/" + input.SubCategoria
	journal, err := s.photos.Reconcile(ctx, tenant, code, PhotoChanges{
		Nuevas:    files,
		RutaNueva: folder,
		UserID:    input.UserID,
	})
	if err != nil {
		return code, journal, err
	}

	if len(packAdds) > 0 {
		if err := s.packs.Sync(ctx, tenant, code, nil, nil, packAdds, input.UserID); err != nil {
			return code, journal, err
		}
	}

	return code, journal, nil
}

// UpdateProduct applique un change-set épars : UPDATE partiel sur
// `productos` (sauté si le change-set est vide), puis réconciliation des
// photos (suppressions, changement de dossier, ajouts), puis diffs du
// paquete. Les étapes déjà appliquées restent acquises en cas d'échec.
func (s *Service) UpdateProduct(ctx context.Context, tenant string, changes *models.ProductChanges,
	files []models.ImageUpload) (*Journal, error) {

	pairs := BuildProductUpdate(changes)
	if len(pairs) > 0 {
		if _, err := s.products.UpdateProduct(ctx, tenant, changes.IDProducto, pairs); err != nil {
			return nil, err
		}
	}

	journal, err := s.photos.Reconcile(ctx, tenant, changes.IDProducto, PhotoChanges{
		Eliminadas:   changes.FotosEliminadas,
		Nuevas:       files,
		RutaAnterior: changes.RutaAnterior,
		RutaNueva:    changes.RutaNueva,
		UserID:       changes.UserID,
	})
	if err != nil {
		return journal, err
	}

	if len(changes.PaqueteEliminados) > 0 || len(changes.PaqueteActualizados) > 0 || len(changes.PaqueteAgregados) > 0 {
		err = s.packs.Sync(ctx, tenant, changes.IDProducto,
			changes.PaqueteEliminados, changes.PaqueteActualizados, changes.PaqueteAgregados,
			changes.UserID)
		if err != nil {
			return journal, err
		}
	}

	return journal, nil
}
