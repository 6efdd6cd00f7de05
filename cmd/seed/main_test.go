package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/jhoicas/Comercial-api/internal/infrastructure/seed"
)

func TestReadAccountsCSV_UTF8ConEncabezado(t *testing.T) {
	raw := []byte("codigo;nombre;tipo\n2205;Proveedores nacionales;liability\n4135;Comercio al por mayor;REVENUE\n")
	accs, err := readAccountsCSV(raw, time.Now())
	require.NoError(t, err)
	require.Len(t, accs, 2)
	assert.Equal(t, "2205", accs[0].AccountCode)
	assert.Equal(t, entity.AccountTypeLiability, accs[0].AccountType)
	assert.Equal(t, seed.StableID("account", "4135"), accs[1].ID)
}

func TestReadAccountsCSV_Latin1(t *testing.T) {
	latin1, err := charmap.ISO8859_1.NewEncoder().String("5105;Gastos de personal y nómina;EXPENSE\n")
	require.NoError(t, err)

	accs, err := readAccountsCSV([]byte(latin1), time.Now())
	require.NoError(t, err)
	require.Len(t, accs, 1)
	assert.Equal(t, "Gastos de personal y nómina", accs[0].Name)
}

func TestReadAccountsCSV_TipoInvalido(t *testing.T) {
	_, err := readAccountsCSV([]byte("9999;Otra;ACTIVO\n"), time.Now())
	assert.Error(t, err)
}

func TestMergeAccounts_CSVGanaYOrdena(t *testing.T) {
	now := time.Now()
	base := seed.Accounts(now)
	extra := []*entity.Account{
		{AccountCode: "1010", Name: "Caja general", AccountType: entity.AccountTypeAsset},
		{AccountCode: "0500", Name: "Primera", AccountType: entity.AccountTypeAsset},
	}
	out := mergeAccounts(base, extra)
	require.Len(t, out, len(base)+1)
	assert.Equal(t, "0500", out[0].AccountCode)
	for _, a := range out {
		if a.AccountCode == "1010" {
			assert.Equal(t, "Caja general", a.Name)
		}
	}
}

func TestWriteSeed(t *testing.T) {
	var b strings.Builder
	now := time.Now()
	accs := []*entity.Account{{ID: "a", AccountCode: "1010", Name: "Caja d'oro", AccountType: entity.AccountTypeAsset}}
	require.NoError(t, writeSeed(&b, seed.Operations(now), seed.PaymentMethods(), accs))

	sql := b.String()
	assert.Contains(t, sql, "INSERT INTO operations")
	assert.Contains(t, sql, "'"+seed.StableID("operation", "SALE")+"', 'Venta', 'SALE', 'SALE', false, true)")
	assert.Contains(t, sql, "('a', '1010', 'Caja d''oro', 'ASSET', 0, TRUE)\nON CONFLICT (account_code)")
	assert.Equal(t, 3, strings.Count(sql, "ON CONFLICT"))
}
