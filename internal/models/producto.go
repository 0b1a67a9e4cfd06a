package models

import (
	"io"
	"time"
)

// Product reflète une ligne de la table `productos` d'une base tenant.
type Product struct {
	IDProducto     string    `json:"idProducto"`
	IDCategoria    string    `json:"idCategoria"`
	IDSubCategoria string    `json:"idSubCategoria"`
	IDMarca        string    `json:"idMarca"`
	IDColor        string    `json:"idColor"`
	Nombre         string    `json:"nombre"`
	Precio         string    `json:"precio"`
	Cantidad       string    `json:"cantidad"`
	Descripcion    string    `json:"descripcion"`
	Destacado      bool      `json:"destacado"`
	Nuevo          bool      `json:"nuevo"`
	MasVendido     bool      `json:"masVendido"`
	Activo         bool      `json:"activo"`
	UserID         string    `json:"userId"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ProductPhoto reflète une ligne de `fotosproductos`. RutaCloudinary est le
// dossier de stockage distant (<tenant>/<categoria>/<subCategoria>),
// historiquement nommé ainsi dans le schéma de production.
type ProductPhoto struct {
	IDFoto         string    `json:"idFoto"`
	IDProducto     string    `json:"idProducto"`
	URLFoto        string    `json:"url_foto"`
	IsPrincipal    bool      `json:"isPrincipal"`
	RutaCloudinary string    `json:"rutaCloudinary"`
	UserID         string    `json:"userId"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// PackItem reflète une ligne de `productospaquete` : l'appartenance d'un
// produit membre à un produit "paquete" avec sa quantité.
type PackItem struct {
	IDProductoPaquete string    `json:"idProductoPaquete"`
	IDPaquete         string    `json:"idPaquete"`
	IDProducto        string    `json:"idProducto"`
	Cantidad          int       `json:"cantidad"`
	UserID            string    `json:"userId"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ImageUpload est un fichier image reçu du client, prêt à être envoyé au
// stockage d'objets.
type ImageUpload struct {
	Reader      io.Reader
	Size        int64
	ContentType string
}

// ProductInput porte les champs d'une création de produit. Tout arrive en
// texte depuis le formulaire multipart ; Categoria et SubCategoria (les
// libellés) servent à construire le dossier de stockage des images.
type ProductInput struct {
	IDCategoria    string `form:"idCategoria"`
	Categoria      string `form:"categoria"`
	IDSubCategoria string `form:"idSubCategoria"`
	SubCategoria   string `form:"subCategoria"`
	IDMarca        string `form:"idMarca"`
	IDColor        string `form:"idColor"`
	Nombre         string `form:"nombre"`
	Precio         string `form:"precio"`
	Cantidad       string `form:"cantidad"`
	Descripcion    string `form:"descripcion"`
	Destacado      string `form:"destacado"`
	Nuevo          string `form:"nuevo"`
	MasVendido     string `form:"masVendido"`
	Activo         string `form:"activo"`
	UserID         string `form:"userId"`
}

// ProductChanges est le change-set épars d'une mise à jour de produit.
// Un champ vide ou "null" est considéré comme absent. Les champs de
// contrôle (identifiant, listes de photos, changement de dossier, diffs du
// paquete) ne participent jamais au UPDATE partiel : ils pilotent les
// réconciliations photos et paquete.
type ProductChanges struct {
	IDProducto     string `form:"idProducto"`
	IDCategoria    string `form:"idCategoria"`
	IDSubCategoria string `form:"idSubCategoria"`
	IDMarca        string `form:"idMarca"`
	IDColor        string `form:"idColor"`
	Nombre         string `form:"nombre"`
	Precio         string `form:"precio"`
	Cantidad       string `form:"cantidad"`
	Descripcion    string `form:"descripcion"`
	Destacado      string `form:"destacado"`
	Nuevo          string `form:"nuevo"`
	MasVendido     string `form:"masVendido"`
	Activo         string `form:"activo"`
	UserID         string `form:"userId"`

	// Champs de contrôle (exclus du UPDATE partiel)
	FotosEliminadas []string `form:"fotosEliminadas"`
	RutaAnterior    string   `form:"rutaAnterior"`
	RutaNueva       string   `form:"rutaNueva"`

	PaqueteEliminados   []PackItemRemove `form:"-" json:"paqueteEliminados"`
	PaqueteActualizados []PackItemUpdate `form:"-" json:"paqueteActualizados"`
	PaqueteAgregados    []PackItemAdd    `form:"-" json:"paqueteAgregados"`
}

// PackItemRemove identifie une ligne de `productospaquete` à supprimer.
type PackItemRemove struct {
	IDProductoPaquete string `json:"idProductoPaquete"`
	IDPaquete         string `json:"idPaquete"`
}

// PackItemUpdate porte la nouvelle quantité d'une ligne existante.
type PackItemUpdate struct {
	IDProductoPaquete string `json:"idProductoPaquete"`
	IDPaquete         string `json:"idPaquete"`
	Cantidad          int    `json:"cantidad"`
}

// PackItemAdd décrit un membre à ajouter au paquete.
type PackItemAdd struct {
	IDProducto string `json:"idProducto"`
	Cantidad   int    `json:"cantidad"`
}
