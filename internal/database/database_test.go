package database

import (
	"strings"
	"testing"
)

func TestGetEnvVarMissing(t *testing.T) {
	_, err := getEnvVar("fantome", "HOST")
	if err == nil {
		t.Fatal("variable absente: erreur attendue")
	}
	if !strings.Contains(err.Error(), "MYSQL_FANTOME_HOST") {
		t.Errorf("l'erreur doit nommer la variable manquante: %v", err)
	}
}

func TestGetEnvVarNamingConvention(t *testing.T) {
	t.Setenv("MYSQL_TIENDA1_DATABASE", "catalogo")

	got, err := getEnvVar("tienda1", "database")
	if err != nil {
		t.Fatalf("erreur inattendue: %v", err)
	}
	if got != "catalogo" {
		t.Errorf("valeur = %q, attendu %q", got, "catalogo")
	}
}

func setTenantEnv(t *testing.T, tenant string) {
	t.Helper()
	t.Setenv("MYSQL_"+tenant+"_HOST", "127.0.0.1")
	t.Setenv("MYSQL_"+tenant+"_USER", "root")
	t.Setenv("MYSQL_"+tenant+"_PASSWORD", "secret")
	t.Setenv("MYSQL_"+tenant+"_DATABASE", "catalogo")
	t.Setenv("MYSQL_"+tenant+"_PORT", "3306")
}

func TestGetPoolIsCached(t *testing.T) {
	setTenantEnv(t, "TIENDA1")
	tm := NewTenantManager()
	defer tm.Close()

	// sql.Open ne se connecte pas : la création du pool est purement locale.
	first, err := tm.GetPool("tienda1")
	if err != nil {
		t.Fatalf("premier accès: %v", err)
	}
	second, err := tm.GetPool("tienda1")
	if err != nil {
		t.Fatalf("second accès: %v", err)
	}
	if first != second {
		t.Error("le second accès doit retourner le pool déjà créé")
	}
}

func TestGetPoolMissingConfig(t *testing.T) {
	t.Setenv("MYSQL_TIENDA2_USER", "root")
	// HOST, PASSWORD, DATABASE et PORT manquent volontairement.
	tm := NewTenantManager()
	defer tm.Close()

	if _, err := tm.GetPool("tienda2"); err == nil {
		t.Fatal("configuration incomplète: erreur attendue")
	}
}

func TestGetPoolIsolatesTenants(t *testing.T) {
	setTenantEnv(t, "TIENDA1")
	setTenantEnv(t, "TIENDA2")
	tm := NewTenantManager()
	defer tm.Close()

	a, err := tm.GetPool("tienda1")
	if err != nil {
		t.Fatalf("tienda1: %v", err)
	}
	b, err := tm.GetPool("tienda2")
	if err != nil {
		t.Fatalf("tienda2: %v", err)
	}
	if a == b {
		t.Error("chaque tenant doit avoir son propre pool")
	}
}

func TestGetPoolConcurrentFirstAccess(t *testing.T) {
	setTenantEnv(t, "TIENDA1")
	tm := NewTenantManager()
	defer tm.Close()

	pools := make(chan any, 8)
	for i := 0; i < 8; i++ {
		go func() {
			db, err := tm.GetPool("tienda1")
			if err != nil {
				pools <- err
				return
			}
			pools <- db
		}()
	}

	var unique = make(map[any]bool)
	for i := 0; i < 8; i++ {
		v := <-pools
		if err, ok := v.(error); ok {
			t.Fatalf("accès concurrent: %v", err)
		}
		unique[v] = true
	}
	if len(unique) != 1 {
		t.Errorf("%d pools créés pour un même tenant, attendu 1", len(unique))
	}
}
