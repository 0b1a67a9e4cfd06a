package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql"

	"importony_back_end/internal/metrics"
)

// TenantManager gère un pool de connexions MySQL par tenant. Chaque tenant
// (boutique) possède sa propre base : les pools sont créés paresseusement au
// premier accès à partir des variables d'environnement MYSQL_<TENANT>_<CHAMP>
// puis réutilisés jusqu'à l'arrêt du processus.
type TenantManager struct {
	pools map[string]*sql.DB // tenant → pool
	mu    sync.Mutex
}

const (
	// Limite fixe de connexions simultanées par tenant : au-delà, les
	// appelants attendent qu'une connexion se libère (pas d'erreur).
	maxConnsPerTenant = 10

	connMaxLifetime = 3 * time.Minute
)

// Pools est le registre partagé par tout le processus, construit dans main.
var Pools *TenantManager

// Connect initialise le registre. Aucune connexion n'est ouverte ici :
// elles le seront au premier accès de chaque tenant.
func Connect() {
	Pools = NewTenantManager()
	log.Println("✅ Registre de pools MySQL initialisé (connexion paresseuse par tenant)")
}

func NewTenantManager() *TenantManager {
	return &TenantManager{pools: make(map[string]*sql.DB)}
}

// getEnvVar résout une variable de configuration par convention de nommage.
func getEnvVar(tenant, key string) (string, error) {
	name := "MYSQL_" + strings.ToUpper(tenant) + "_" + strings.ToUpper(key)
	value := os.Getenv(name)
	if value == "" {
		return "", fmt.Errorf("variable %s introuvable dans .env", name)
	}
	return value, nil
}

// GetPool retourne le pool du tenant, en le créant au premier appel.
// La création est protégée par le mutex du registre : deux premiers accès
// simultanés pour le même tenant ne peuvent pas créer deux pools.
func (tm *TenantManager) GetPool(tenant string) (*sql.DB, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	// Si le pool existe déjà, le réutiliser
	if db, exists := tm.pools[tenant]; exists {
		return db, nil
	}

	cfg := mysql.NewConfig()
	var err error
	if cfg.User, err = getEnvVar(tenant, "USER"); err != nil {
		return nil, err
	}
	if cfg.Passwd, err = getEnvVar(tenant, "PASSWORD"); err != nil {
		return nil, err
	}
	if cfg.DBName, err = getEnvVar(tenant, "DATABASE"); err != nil {
		return nil, err
	}
	host, err := getEnvVar(tenant, "HOST")
	if err != nil {
		return nil, err
	}
	port, err := getEnvVar(tenant, "PORT")
	if err != nil {
		return nil, err
	}
	cfg.Net = "tcp"
	cfg.Addr = host + ":" + port
	cfg.ParseTime = true

	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("erreur création du pool pour %s: %v", tenant, err)
	}
	db.SetMaxOpenConns(maxConnsPerTenant)
	db.SetMaxIdleConns(maxConnsPerTenant)
	db.SetConnMaxLifetime(connMaxLifetime)

	// Stocke le pool pour réutilisation
	tm.pools[tenant] = db
	metrics.RecordPoolCreated()
	log.Printf("✅ Nouveau pool MySQL pour le tenant '%s' (base: %s)", tenant, cfg.DBName)

	return db, nil
}

// ExecuteQuery exécute une requête paramétrée sur la base du tenant et
// retourne les lignes sous forme de maps colonne → valeur. Les erreurs du
// driver sont enrichies du tenant avant d'être propagées ; aucun retry.
func (tm *TenantManager) ExecuteQuery(ctx context.Context, tenant, query string, args ...any) ([]map[string]any, error) {
	db, err := tm.GetPool(tenant)
	if err != nil {
		metrics.RecordQuery(tenant, "config_error")
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		metrics.RecordQuery(tenant, "error")
		return nil, fmt.Errorf("erreur exécution de la requête pour %s: %v", tenant, err)
	}
	defer rows.Close()

	results, err := scanRows(rows)
	if err != nil {
		metrics.RecordQuery(tenant, "error")
		return nil, fmt.Errorf("erreur lecture des résultats pour %s: %v", tenant, err)
	}
	metrics.RecordQuery(tenant, "ok")
	return results, nil
}

// ExecuteUpdate exécute une instruction d'écriture (INSERT/UPDATE/DELETE)
// et retourne le nombre de lignes affectées.
func (tm *TenantManager) ExecuteUpdate(ctx context.Context, tenant, query string, args ...any) (int64, error) {
	db, err := tm.GetPool(tenant)
	if err != nil {
		metrics.RecordQuery(tenant, "config_error")
		return 0, err
	}

	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		metrics.RecordQuery(tenant, "error")
		return 0, fmt.Errorf("erreur exécution de la requête pour %s: %v", tenant, err)
	}
	metrics.RecordQuery(tenant, "ok")

	affected, _ := res.RowsAffected()
	return affected, nil
}

// scanRows convertit un jeu de résultats en maps génériques. Les valeurs
// []byte (texte MySQL) sont converties en string, les NULL restent nil.
func scanRows(rows *sql.Rows) ([]map[string]any, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []map[string]any
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// Close ferme tous les pools. À n'appeler qu'à l'arrêt du processus.
func (tm *TenantManager) Close() {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	for tenant, db := range tm.pools {
		db.Close()
		log.Printf("🔌 Pool MySQL fermé pour le tenant '%s'", tenant)
	}
	tm.pools = make(map[string]*sql.DB)
}
