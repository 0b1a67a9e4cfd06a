package catalog

import (
	"context"
	"fmt"

	"importony_back_end/internal/models"
	"importony_back_end/internal/utils"
)

// firstPhotoCode est le point de départ des codes photo quand la table est
// vide : NextCode le transforme en FPRD0001.
const firstPhotoCode = "FPRD0000"

// PhotoChanges décrit les opérations demandées par l'appelant sur les
// photos d'un produit. Les listes sont fournies telles quelles par la
// couche frontière (qui calcule les diffs côté client) : rien n'est déduit
// ici. RutaAnterior/RutaNueva signalent un changement de dossier de
// stockage quand la catégorie ou la sous-catégorie du produit change.
type PhotoChanges struct {
	Eliminadas   []string             // codes des photos à supprimer
	Nuevas       []models.ImageUpload // fichiers à ajouter
	RutaAnterior string               // ancien dossier (vide si inchangé)
	RutaNueva    string               // dossier cible des photos
	UserID       string
}

// JournalEntry trace une action distante appliquée avec succès.
type JournalEntry struct {
	Step   string // "delete", "relocate", "add", "principal"
	Target string // objet ou ligne concerné
}

// Journal enregistre, dans l'ordre, chaque action déjà appliquée sur les
// deux magasins. Il n'y a pas de transaction entre MySQL et MinIO : en cas
// d'échec à mi-parcours rien n'est annulé, et le journal permet à une passe
// de réconciliation ultérieure de savoir où l'exécution s'est arrêtée.
type Journal struct {
	Entries []JournalEntry
}

func (j *Journal) record(step, format string, args ...any) {
	j.Entries = append(j.Entries, JournalEntry{Step: step, Target: fmt.Sprintf(format, args...)})
}

// PhotoReconciler applique les changements de photos d'un produit en
// maintenant l'invariant : un produit qui possède au moins une photo a
// exactement une photo principale.
type PhotoReconciler struct {
	db     PhotoStore
	images ImageStore
}

func NewPhotoReconciler(db PhotoStore, images ImageStore) *PhotoReconciler {
	return &PhotoReconciler{db: db, images: images}
}

// Reconcile exécute les trois étapes dans l'ordre : suppressions, puis
// déplacement de dossier, puis ajouts. Chaque étape est une suite d'appels
// distants indépendants ; le premier échec arrête l'exécution et le journal
// retourné liste ce qui avait déjà été appliqué.
func (r *PhotoReconciler) Reconcile(ctx context.Context, tenant, productID string, changes PhotoChanges) (*Journal, error) {
	journal := &Journal{}

	photos, err := r.db.ListPhotos(ctx, tenant, productID)
	if err != nil {
		return journal, err
	}

	photos, err = r.deletePhotos(ctx, tenant, productID, photos, changes, journal)
	if err != nil {
		return journal, err
	}

	photos, err = r.relocatePhotos(ctx, tenant, photos, changes, journal)
	if err != nil {
		return journal, err
	}

	if err := r.addPhotos(ctx, tenant, productID, photos, changes, journal); err != nil {
		return journal, err
	}

	return journal, nil
}

// deletePhotos supprime chaque photo marquée par l'appelant : d'abord
// l'objet distant sous <ancien dossier>/<code>, puis la ligne. Si la photo
// supprimée était principale, la photo restante au plus petit code est
// promue immédiatement. Un produit qui n'a plus aucune photo n'a plus de
// principale : ce n'est pas une erreur.
func (r *PhotoReconciler) deletePhotos(ctx context.Context, tenant, productID string, photos []models.ProductPhoto, changes PhotoChanges, journal *Journal) ([]models.ProductPhoto, error) {
	for _, code := range changes.Eliminadas {
		victim, remaining := splitPhoto(photos, code)
		if victim == nil {
			// Déjà absente : rien à faire pour ce code.
			continue
		}

		folder := changes.RutaAnterior
		if folder == "" {
			folder = victim.RutaCloudinary
		}

		if err := r.images.Delete(ctx, folder+"/"+code); err != nil {
			return photos, err
		}
		journal.record("delete", "objet %s/%s", folder, code)

		if err := r.db.DeletePhoto(ctx, tenant, code); err != nil {
			return photos, err
		}
		journal.record("delete", "ligne %s", code)
		photos = remaining

		if victim.IsPrincipal && len(photos) > 0 {
			// Ré-élection : la photo au plus petit code devient principale.
			next := smallestCode(photos)
			if err := r.db.SetPrincipal(ctx, tenant, next, true); err != nil {
				return photos, err
			}
			markPrincipal(photos, next)
			journal.record("principal", "ré-élection de %s pour %s", next, productID)
		}
	}
	return photos, nil
}

// relocatePhotos déplace les photos restantes vers le nouveau dossier quand
// l'appelant a signalé un changement de chemin. Cette étape suppose que les
// suppressions ont déjà eu lieu : elle ne touche jamais une photo supprimée.
func (r *PhotoReconciler) relocatePhotos(ctx context.Context, tenant string, photos []models.ProductPhoto, changes PhotoChanges, journal *Journal) ([]models.ProductPhoto, error) {
	if changes.RutaAnterior == "" || changes.RutaAnterior == changes.RutaNueva {
		return photos, nil
	}

	for i := range photos {
		url, err := r.images.Move(ctx, changes.RutaAnterior, changes.RutaNueva, photos[i].IDFoto)
		if err != nil {
			return photos, err
		}
		journal.record("relocate", "objet %s: %s → %s", photos[i].IDFoto, changes.RutaAnterior, changes.RutaNueva)

		if err := r.db.SetLocation(ctx, tenant, photos[i].IDFoto, changes.RutaNueva, url); err != nil {
			return photos, err
		}
		journal.record("relocate", "ligne %s", photos[i].IDFoto)

		photos[i].RutaCloudinary = changes.RutaNueva
		photos[i].URLFoto = url
	}
	return photos, nil
}

// addPhotos insère les nouveaux fichiers. La présence d'une principale est
// vérifiée une seule fois avant la boucle : si le produit n'en a pas, le
// premier fichier ajouté la devient, les suivants jamais.
func (r *PhotoReconciler) addPhotos(ctx context.Context, tenant, productID string, photos []models.ProductPhoto, changes PhotoChanges, journal *Journal) error {
	if len(changes.Nuevas) == 0 {
		return nil
	}

	hasPrincipal := false
	for _, p := range photos {
		if p.IsPrincipal {
			hasPrincipal = true
			break
		}
	}

	code, err := r.db.LastPhotoCode(ctx, tenant)
	if err != nil {
		return err
	}
	if code == "" {
		code = firstPhotoCode
	}

	for i, file := range changes.Nuevas {
		code = utils.NextCode(code)
		principal := !hasPrincipal && i == 0

		photo := models.ProductPhoto{
			IDFoto:         code,
			IDProducto:     productID,
			IsPrincipal:    principal,
			RutaCloudinary: changes.RutaNueva,
			UserID:         changes.UserID,
		}
		if err := r.db.InsertPhoto(ctx, tenant, photo); err != nil {
			return err
		}
		journal.record("add", "ligne %s", code)

		url, err := r.images.Upload(ctx, file.Reader, file.Size, file.ContentType, code, changes.RutaNueva)
		if err != nil {
			return err
		}
		journal.record("add", "objet %s/%s", changes.RutaNueva, code)

		if err := r.db.SetLocation(ctx, tenant, code, changes.RutaNueva, url); err != nil {
			return err
		}
		journal.record("add", "url %s", code)
	}
	return nil
}

// splitPhoto retire la photo `code` de la liste et la retourne, ou nil si
// elle n'y figure pas.
func splitPhoto(photos []models.ProductPhoto, code string) (*models.ProductPhoto, []models.ProductPhoto) {
	for i := range photos {
		if photos[i].IDFoto == code {
			victim := photos[i]
			remaining := append(append([]models.ProductPhoto{}, photos[:i]...), photos[i+1:]...)
			return &victim, remaining
		}
	}
	return nil, photos
}

// smallestCode retourne le plus petit code de la liste (ordre
// lexicographique, qui coïncide avec l'ordre numérique à largeur égale).
func smallestCode(photos []models.ProductPhoto) string {
	min := photos[0].IDFoto
	for _, p := range photos[1:] {
		if p.IDFoto < min {
			min = p.IDFoto
		}
	}
	return min
}

func markPrincipal(photos []models.ProductPhoto, code string) {
	for i := range photos {
		photos[i].IsPrincipal = photos[i].IDFoto == code
	}
}
