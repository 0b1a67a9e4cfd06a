package catalog

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"importony_back_end/internal/models"
)

// fakePhotoDB simule la table fotosproductos en mémoire.
type fakePhotoDB struct {
	photos map[string]models.ProductPhoto // idFoto → ligne
	errOn  map[string]error               // nom d'opération → erreur forcée
}

func newFakePhotoDB(rows ...models.ProductPhoto) *fakePhotoDB {
	db := &fakePhotoDB{photos: make(map[string]models.ProductPhoto), errOn: make(map[string]error)}
	for _, r := range rows {
		db.photos[r.IDFoto] = r
	}
	return db
}

func (db *fakePhotoDB) ListPhotos(_ context.Context, _, productID string) ([]models.ProductPhoto, error) {
	if err := db.errOn["list"]; err != nil {
		return nil, err
	}
	var out []models.ProductPhoto
	for _, p := range db.photos {
		if p.IDProducto == productID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IDFoto < out[j].IDFoto })
	return out, nil
}

func (db *fakePhotoDB) InsertPhoto(_ context.Context, _ string, photo models.ProductPhoto) error {
	if err := db.errOn["insert"]; err != nil {
		return err
	}
	if _, exists := db.photos[photo.IDFoto]; exists {
		return fmt.Errorf("duplicate key %s", photo.IDFoto)
	}
	db.photos[photo.IDFoto] = photo
	return nil
}

func (db *fakePhotoDB) DeletePhoto(_ context.Context, _, fotoID string) error {
	if err := db.errOn["delete"]; err != nil {
		return err
	}
	delete(db.photos, fotoID)
	return nil
}

func (db *fakePhotoDB) SetPrincipal(_ context.Context, _, fotoID string, principal bool) error {
	if err := db.errOn["principal"]; err != nil {
		return err
	}
	p, ok := db.photos[fotoID]
	if !ok {
		return fmt.Errorf("photo %s introuvable", fotoID)
	}
	p.IsPrincipal = principal
	db.photos[fotoID] = p
	return nil
}

func (db *fakePhotoDB) SetLocation(_ context.Context, _, fotoID, folder, url string) error {
	if err := db.errOn["location"]; err != nil {
		return err
	}
	p, ok := db.photos[fotoID]
	if !ok {
		return fmt.Errorf("photo %s introuvable", fotoID)
	}
	p.RutaCloudinary = folder
	p.URLFoto = url
	db.photos[fotoID] = p
	return nil
}

func (db *fakePhotoDB) LastPhotoCode(_ context.Context, _ string) (string, error) {
	if err := db.errOn["last"]; err != nil {
		return "", err
	}
	max := ""
	for code := range db.photos {
		if code > max {
			max = code
		}
	}
	return max, nil
}

// fakeImages simule le stockage d'objets en mémoire (à la manière du store
// mémoire utilisé par les tests de blob ailleurs).
type fakeImages struct {
	mu      sync.Mutex
	objects map[string][]byte
	failAt  map[string]int // opération → ordinal (1-based) qui échoue
	calls   map[string]int
}

func newFakeImages() *fakeImages {
	return &fakeImages{objects: make(map[string][]byte), failAt: make(map[string]int), calls: make(map[string]int)}
}

func (f *fakeImages) tick(op string) error {
	f.calls[op]++
	if n, ok := f.failAt[op]; ok && f.calls[op] == n {
		return fmt.Errorf("échec simulé %s #%d", op, n)
	}
	return nil
}

func (f *fakeImages) Upload(_ context.Context, r io.Reader, _ int64, _, objectID, folder string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.tick("upload"); err != nil {
		return "", err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	key := folder + "/" + objectID
	f.objects[key] = data
	return "http://images.test/" + key, nil
}

func (f *fakeImages) Delete(_ context.Context, objectPath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.tick("delete"); err != nil {
		return err
	}
	delete(f.objects, objectPath)
	return nil
}

func (f *fakeImages) Move(_ context.Context, oldFolder, newFolder, objectID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.tick("move"); err != nil {
		return "", err
	}
	oldKey := oldFolder + "/" + objectID
	newKey := newFolder + "/" + objectID
	data, ok := f.objects[oldKey]
	if !ok {
		return "", fmt.Errorf("objet %s introuvable", oldKey)
	}
	f.objects[newKey] = data
	delete(f.objects, oldKey)
	return "http://images.test/" + newKey, nil
}

// fakePackDB simule la table productospaquete.
type fakePackDB struct {
	items map[string]models.PackItem
	errOn map[string]error
}

func newFakePackDB(rows ...models.PackItem) *fakePackDB {
	db := &fakePackDB{items: make(map[string]models.PackItem), errOn: make(map[string]error)}
	for _, r := range rows {
		db.items[r.IDProductoPaquete] = r
	}
	return db
}

func (db *fakePackDB) DeleteItem(_ context.Context, _, itemID, packID string) error {
	if err := db.errOn["delete:"+itemID]; err != nil {
		return err
	}
	item, ok := db.items[itemID]
	if ok && item.IDPaquete == packID {
		delete(db.items, itemID)
	}
	return nil
}

func (db *fakePackDB) UpdateQuantity(_ context.Context, _, itemID, packID string, cantidad int) error {
	if err := db.errOn["update:"+itemID]; err != nil {
		return err
	}
	item, ok := db.items[itemID]
	if !ok || item.IDPaquete != packID {
		return fmt.Errorf("item %s introuvable dans %s", itemID, packID)
	}
	item.Cantidad = cantidad
	db.items[itemID] = item
	return nil
}

func (db *fakePackDB) InsertItem(_ context.Context, _ string, item models.PackItem) error {
	if err := db.errOn["insert:"+item.IDProducto]; err != nil {
		return err
	}
	if _, exists := db.items[item.IDProductoPaquete]; exists {
		return fmt.Errorf("duplicate key %s", item.IDProductoPaquete)
	}
	db.items[item.IDProductoPaquete] = item
	return nil
}

func (db *fakePackDB) LastItemCode(_ context.Context, _ string) (string, error) {
	if err := db.errOn["last"]; err != nil {
		return "", err
	}
	max := ""
	for code := range db.items {
		if code > max {
			max = code
		}
	}
	return max, nil
}

// fakeProductDB simule la table productos.
type fakeProductDB struct {
	rows    map[string]*models.ProductInput
	updates map[string][]SetPair
	last    string
	errOn   map[string]error
}

func newFakeProductDB() *fakeProductDB {
	return &fakeProductDB{
		rows:    make(map[string]*models.ProductInput),
		updates: make(map[string][]SetPair),
		errOn:   make(map[string]error),
	}
}

func (db *fakeProductDB) InsertProduct(_ context.Context, _ string, code string, input *models.ProductInput) error {
	if err := db.errOn["insert"]; err != nil {
		return err
	}
	if _, exists := db.rows[code]; exists {
		return fmt.Errorf("duplicate key %s", code)
	}
	db.rows[code] = input
	if code > db.last {
		db.last = code
	}
	return nil
}

func (db *fakeProductDB) UpdateProduct(_ context.Context, _, productID string, pairs []SetPair) (int64, error) {
	if err := db.errOn["update"]; err != nil {
		return 0, err
	}
	db.updates[productID] = append(db.updates[productID], pairs...)
	return 1, nil
}

func (db *fakeProductDB) LastProductCode(_ context.Context, _ string) (string, error) {
	if err := db.errOn["last"]; err != nil {
		return "", err
	}
	return db.last, nil
}
