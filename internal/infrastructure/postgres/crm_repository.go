package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
	"github.com/jhoicas/erpcrm-api/internal/domain/repository"
)

var (
	_ repository.CrmMusteriRepository  = (*CrmMusteriRepo)(nil)
	_ repository.CrmAktiviteRepository = (*CrmAktiviteRepo)(nil)
)

// CrmMusteriRepo implementación del puerto CrmMusteriRepository sobre PostgreSQL.
type CrmMusteriRepo struct {
	q Querier
}

// NewCrmMusteriRepository construye el adaptador de persistencia para clientes del CRM.
func NewCrmMusteriRepository(q Querier) *CrmMusteriRepo {
	return &CrmMusteriRepo{q: q}
}

const crmMusteriColumns = `id, tenant_id, musteri_kodu, musteri_adi, firma_adi, telefon, email, adres, il, ilce,
	sektor, musteri_kaynagi, musteri_durumu, atanan_kullanici_id, "not", aktif, olusturma_tarihi, guncelleme_tarihi`

func scanCrmMusteri(row pgx.Row) (*entity.CrmMusteri, error) {
	var m entity.CrmMusteri
	var firmaAdi, telefon, email, adres, il, ilce, sektor, kaynak, not *string
	err := row.Scan(&m.ID, &m.TenantID, &m.MusteriKodu, &m.MusteriAdi, &firmaAdi, &telefon, &email, &adres,
		&il, &ilce, &sektor, &kaynak, &m.MusteriDurumu, &m.AtananKullaniciID, &not, &m.Aktif,
		&m.OlusturmaTarihi, &m.GuncellemeTarihi)
	if err != nil {
		return nil, err
	}
	m.FirmaAdi, m.Telefon, m.Email, m.Adres = fromNull(firmaAdi), fromNull(telefon), fromNull(email), fromNull(adres)
	m.Il, m.Ilce, m.Sektor = fromNull(il), fromNull(ilce), fromNull(sektor)
	m.MusteriKaynagi, m.Not = fromNull(kaynak), fromNull(not)
	return &m, nil
}

func (r *CrmMusteriRepo) list(ctx context.Context, op, where string, args ...any) ([]*entity.CrmMusteri, error) {
	rows, err := r.q.Query(ctx, `SELECT `+crmMusteriColumns+` FROM crm_musteriler WHERE `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	list := make([]*entity.CrmMusteri, 0)
	for rows.Next() {
		m, err := scanCrmMusteri(rows)
		if err != nil {
			return nil, fmt.Errorf("scan crm musteri: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func (r *CrmMusteriRepo) get(ctx context.Context, op, where string, args ...any) (*entity.CrmMusteri, error) {
	m, err := scanCrmMusteri(r.q.QueryRow(ctx, `SELECT `+crmMusteriColumns+` FROM crm_musteriler WHERE `+where, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}

// Create persiste un nuevo cliente del CRM.
func (r *CrmMusteriRepo) Create(ctx context.Context, m *entity.CrmMusteri) error {
	query := `
		INSERT INTO crm_musteriler (tenant_id, musteri_kodu, musteri_adi, firma_adi, telefon, email, adres, il, ilce,
			sektor, musteri_kaynagi, musteri_durumu, atanan_kullanici_id, "not", aktif)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, olusturma_tarihi`
	err := r.q.QueryRow(ctx, query,
		m.TenantID, m.MusteriKodu, m.MusteriAdi, nullString(m.FirmaAdi), nullString(m.Telefon), nullString(m.Email),
		nullString(m.Adres), nullString(m.Il), nullString(m.Ilce), nullString(m.Sektor), nullString(m.MusteriKaynagi),
		m.MusteriDurumu, m.AtananKullaniciID, nullString(m.Not), m.Aktif,
	).Scan(&m.ID, &m.OlusturmaTarihi)
	if err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("insert crm musteri: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente de la firma.
func (r *CrmMusteriRepo) GetByID(ctx context.Context, tenantID, id int64) (*entity.CrmMusteri, error) {
	return r.get(ctx, "get crm musteri", `tenant_id = $1 AND id = $2`, tenantID, id)
}

// GetByKod obtiene un cliente por código.
func (r *CrmMusteriRepo) GetByKod(ctx context.Context, tenantID int64, kod string) (*entity.CrmMusteri, error) {
	return r.get(ctx, "get crm musteri by kod", `tenant_id = $1 AND musteri_kodu = $2`, tenantID, kod)
}

// List clientes ordenados por nombre.
func (r *CrmMusteriRepo) List(ctx context.Context, tenantID int64) ([]*entity.CrmMusteri, error) {
	return r.list(ctx, "list crm musteri", `tenant_id = $1 ORDER BY musteri_adi`, tenantID)
}

// Search en código, nombre, empresa, teléfono y email.
func (r *CrmMusteriRepo) Search(ctx context.Context, tenantID int64, pattern string, limit int) ([]*entity.CrmMusteri, error) {
	return r.list(ctx, "search crm musteri", `tenant_id = $1 AND (
			musteri_kodu ILIKE $2 OR musteri_adi ILIKE $2 OR firma_adi ILIKE $2 OR telefon ILIKE $2 OR email ILIKE $2
		) ORDER BY musteri_adi LIMIT $3`, tenantID, pattern, limit)
}

// Update reescribe los campos editables.
func (r *CrmMusteriRepo) Update(ctx context.Context, m *entity.CrmMusteri) error {
	query := `
		UPDATE crm_musteriler SET musteri_kodu = $3, musteri_adi = $4, firma_adi = $5, telefon = $6, email = $7,
			adres = $8, il = $9, ilce = $10, sektor = $11, musteri_kaynagi = $12, musteri_durumu = $13,
			atanan_kullanici_id = $14, "not" = $15, aktif = $16, guncelleme_tarihi = $17
		WHERE tenant_id = $1 AND id = $2`
	_, err := r.q.Exec(ctx, query,
		m.TenantID, m.ID, m.MusteriKodu, m.MusteriAdi, nullString(m.FirmaAdi), nullString(m.Telefon),
		nullString(m.Email), nullString(m.Adres), nullString(m.Il), nullString(m.Ilce), nullString(m.Sektor),
		nullString(m.MusteriKaynagi), m.MusteriDurumu, m.AtananKullaniciID, nullString(m.Not), m.Aktif,
		m.GuncellemeTarihi,
	)
	if err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("update crm musteri: %w", err)
	}
	return nil
}

// Delete borra el cliente y, en cascada, sus actividades.
func (r *CrmMusteriRepo) Delete(ctx context.Context, tenantID, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM crm_musteriler WHERE tenant_id = $1 AND id = $2`, tenantID, id); err != nil {
		return fmt.Errorf("delete crm musteri: %w", err)
	}
	return nil
}

// CrmAktiviteRepo implementación del puerto CrmAktiviteRepository sobre PostgreSQL.
type CrmAktiviteRepo struct {
	q Querier
}

// NewCrmAktiviteRepository construye el adaptador de persistencia para actividades.
func NewCrmAktiviteRepository(q Querier) *CrmAktiviteRepo {
	return &CrmAktiviteRepo{q: q}
}

const crmAktiviteSelect = `
	SELECT a.id, a.tenant_id, a.crm_musteri_id, a.aktivite_tipi, a.baslik, a.aciklama, a.planlanan_tarih,
		a.tamamlanma_tarihi, a.durum, a.sorumlu_kullanici_id, a.oncelik, a.olusturma_tarihi, a.guncelleme_tarihi,
		m.musteri_adi
	FROM crm_aktiviteler a
	JOIN crm_musteriler m ON m.id = a.crm_musteri_id`

func scanCrmAktivite(row pgx.Row) (*entity.CrmAktivite, error) {
	var a entity.CrmAktivite
	var aciklama *string
	err := row.Scan(&a.ID, &a.TenantID, &a.CrmMusteriID, &a.AktiviteTipi, &a.Baslik, &aciklama, &a.PlanlananTarih,
		&a.TamamlanmaTarihi, &a.Durum, &a.SorumluKullaniciID, &a.Oncelik, &a.OlusturmaTarihi, &a.GuncellemeTarihi,
		&a.MusteriAdi)
	if err != nil {
		return nil, err
	}
	a.Aciklama = fromNull(aciklama)
	return &a, nil
}

func (r *CrmAktiviteRepo) list(ctx context.Context, op, tail string, args ...any) ([]*entity.CrmAktivite, error) {
	rows, err := r.q.Query(ctx, crmAktiviteSelect+tail, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	list := make([]*entity.CrmAktivite, 0)
	for rows.Next() {
		a, err := scanCrmAktivite(rows)
		if err != nil {
			return nil, fmt.Errorf("scan crm aktivite: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Create persiste una actividad.
func (r *CrmAktiviteRepo) Create(ctx context.Context, a *entity.CrmAktivite) error {
	query := `
		INSERT INTO crm_aktiviteler (tenant_id, crm_musteri_id, aktivite_tipi, baslik, aciklama, planlanan_tarih,
			tamamlanma_tarihi, durum, sorumlu_kullanici_id, oncelik)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, olusturma_tarihi`
	err := r.q.QueryRow(ctx, query,
		a.TenantID, a.CrmMusteriID, a.AktiviteTipi, a.Baslik, nullString(a.Aciklama), a.PlanlananTarih,
		a.TamamlanmaTarihi, a.Durum, a.SorumluKullaniciID, a.Oncelik,
	).Scan(&a.ID, &a.OlusturmaTarihi)
	if err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("insert crm aktivite: %w", err)
	}
	return nil
}

// GetByID obtiene una actividad de la firma.
func (r *CrmAktiviteRepo) GetByID(ctx context.Context, tenantID, id int64) (*entity.CrmAktivite, error) {
	a, err := scanCrmAktivite(r.q.QueryRow(ctx, crmAktiviteSelect+` WHERE a.tenant_id = $1 AND a.id = $2`, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get crm aktivite: %w", err)
	}
	return a, nil
}

// ListByMusteri actividades de un cliente, la más reciente primero.
func (r *CrmAktiviteRepo) ListByMusteri(ctx context.Context, tenantID, musteriID int64) ([]*entity.CrmAktivite, error) {
	return r.list(ctx, "list crm aktivite",
		` WHERE a.tenant_id = $1 AND a.crm_musteri_id = $2 ORDER BY a.planlanan_tarih DESC NULLS LAST, a.id DESC`,
		tenantID, musteriID)
}

// ListBekleyen actividades sin completar, la más próxima primero.
func (r *CrmAktiviteRepo) ListBekleyen(ctx context.Context, tenantID int64) ([]*entity.CrmAktivite, error) {
	return r.list(ctx, "list bekleyen aktivite",
		` WHERE a.tenant_id = $1 AND a.tamamlanma_tarihi IS NULL AND a.durum <> $2
		ORDER BY a.planlanan_tarih NULLS LAST, a.oncelik DESC, a.id`,
		tenantID, entity.TamamlandiAktiviteDurum)
}

// Update reescribe la actividad.
func (r *CrmAktiviteRepo) Update(ctx context.Context, a *entity.CrmAktivite) error {
	query := `
		UPDATE crm_aktiviteler SET aktivite_tipi = $3, baslik = $4, aciklama = $5, planlanan_tarih = $6,
			tamamlanma_tarihi = $7, durum = $8, sorumlu_kullanici_id = $9, oncelik = $10, guncelleme_tarihi = $11
		WHERE tenant_id = $1 AND id = $2`
	_, err := r.q.Exec(ctx, query,
		a.TenantID, a.ID, a.AktiviteTipi, a.Baslik, nullString(a.Aciklama), a.PlanlananTarih, a.TamamlanmaTarihi,
		a.Durum, a.SorumluKullaniciID, a.Oncelik, a.GuncellemeTarihi,
	)
	if err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("update crm aktivite: %w", err)
	}
	return nil
}

// Delete borra la actividad.
func (r *CrmAktiviteRepo) Delete(ctx context.Context, tenantID, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM crm_aktiviteler WHERE tenant_id = $1 AND id = $2`, tenantID, id); err != nil {
		return fmt.Errorf("delete crm aktivite: %w", err)
	}
	return nil
}
