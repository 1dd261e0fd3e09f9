package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/erpcrm-api/internal/domain/repository"
)

// ExportUseCase genera el PDF y el XML UBL-TR de una factura.
type ExportUseCase struct {
	faturaRepo repository.FaturaRepository
	tenantRepo repository.TenantRepository
	cariRepo   repository.CariRepository
	pdf        PDFGenerator
	ubl        UBLBuilder
}

// NewExportUseCase construye el caso de uso inyectando sus dependencias.
func NewExportUseCase(
	faturaRepo repository.FaturaRepository,
	tenantRepo repository.TenantRepository,
	cariRepo repository.CariRepository,
	pdf PDFGenerator,
	ubl UBLBuilder,
) *ExportUseCase {
	return &ExportUseCase{faturaRepo: faturaRepo, tenantRepo: tenantRepo, cariRepo: cariRepo, pdf: pdf, ubl: ubl}
}

// load reúne factura, firma emisora y cuenta (si la hay).
func (uc *ExportUseCase) load(ctx context.Context, tenantID, id int64) (FaturaDocument, error) {
	f, err := getFatura(ctx, uc.faturaRepo, tenantID, id)
	if err != nil {
		return FaturaDocument{}, err
	}
	tenant, err := uc.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return FaturaDocument{}, fmt.Errorf("export: obtener firma: %w", err)
	}
	if tenant == nil {
		return FaturaDocument{}, fmt.Errorf("export: firma %d inexistente", tenantID)
	}
	doc := FaturaDocument{Fatura: f, Tenant: tenant}
	if f.CariID != nil {
		if doc.Cari, err = uc.cariRepo.GetByID(ctx, tenantID, *f.CariID); err != nil {
			return FaturaDocument{}, fmt.Errorf("export: obtener cari: %w", err)
		}
	}
	return doc, nil
}

// PDF devuelve el documento y el nombre de archivo sugerido.
func (uc *ExportUseCase) PDF(ctx context.Context, tenantID, id int64) ([]byte, string, error) {
	doc, err := uc.load(ctx, tenantID, id)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.pdf.GenerateFaturaPDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("export: pdf: %w", err)
	}
	return b, exportFilename(doc, "pdf"), nil
}

// UBL devuelve el XML, el nombre de archivo y el digest canónico.
func (uc *ExportUseCase) UBL(ctx context.Context, tenantID, id int64) ([]byte, string, string, error) {
	doc, err := uc.load(ctx, tenantID, id)
	if err != nil {
		return nil, "", "", err
	}
	b, digest, err := uc.ubl.BuildFaturaUBL(ctx, doc)
	if err != nil {
		return nil, "", "", fmt.Errorf("export: ubl: %w", err)
	}
	return b, exportFilename(doc, "xml"), digest, nil
}

// exportFilename "fatura_<no>.<ext>" con los caracteres no seguros para cabeceras reemplazados.
func exportFilename(doc FaturaDocument, ext string) string {
	no := strings.Map(func(r rune) rune {
		if r == '"' || r == '/' || r == '\\' || r < 0x20 {
			return '_'
		}
		return r
	}, doc.Fatura.FaturaNo)
	return fmt.Sprintf("fatura_%s.%s", no, ext)
}
