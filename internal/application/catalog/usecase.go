// Package catalog mantiene el catálogo de productos de cada sucursal.
// El alta provisiona la fila de stock en 0; las cantidades solo cambian por el ledger.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/application/ports"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
	"github.com/jhoicas/pos-backoffice/pkg/logger"
)

// maxBarcodeAttempts intentos de generar un código de barras libre antes de rendirse.
const maxBarcodeAttempts = 10

var (
	ErrCodeTaken        = fmt.Errorf("%w: código ya existe en la sucursal", domain.ErrDuplicate)
	ErrBarcodeTaken     = fmt.Errorf("%w: código de barras ya existe en la sucursal", domain.ErrDuplicate)
	ErrBarcodeExhausted = errors.New("no se pudo generar un código de barras único")
)

// UseCase alta, edición, baja lógica y consulta de productos.
type UseCase struct {
	tx       ports.TxRunner
	products repository.ProductRepository
	barcode  func() string
	log      *logger.Logger
}

// NewUseCase construye el caso de uso con el generador EAN-13 por defecto.
func NewUseCase(tx ports.TxRunner, products repository.ProductRepository, log *logger.Logger) *UseCase {
	return &UseCase{tx: tx, products: products, barcode: RandomEAN13, log: log.Component("catalogo")}
}

// WithBarcodeGenerator reemplaza el generador de códigos de barras.
func (uc *UseCase) WithBarcodeGenerator(gen func() string) *UseCase {
	uc.barcode = gen
	return uc
}

// Create inserta el producto y su fila de stock en 0 en una misma transacción.
// Sin código de barras se genera un EAN-13 libre.
func (uc *UseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	code := strings.TrimSpace(in.Code)
	name := strings.TrimSpace(in.Name)
	if code == "" || name == "" || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	p := &entity.Product{
		ID:          uuid.New().String(),
		BranchID:    actor.BranchID,
		Code:        code,
		Barcode:     strings.TrimSpace(in.Barcode),
		Name:        name,
		Description: in.Description,
		Price:       in.Price,
		Active:      true,
		CreatedAt:   time.Now(),
	}

	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		products := repos.Products()
		existing, err := products.GetByCode(ctx, p.Code, p.BranchID)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrCodeTaken
		}
		if p.Barcode != "" {
			taken, err := products.GetByBarcode(ctx, p.Barcode, p.BranchID)
			if err != nil {
				return err
			}
			if taken != nil {
				return ErrBarcodeTaken
			}
		} else if p.Barcode, err = uc.freeBarcode(ctx, products, p.BranchID); err != nil {
			return err
		}
		if err := products.Create(ctx, p); err != nil {
			return err
		}
		return repos.Stock().Create(ctx, p.ID, p.BranchID, 0)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", p.ID).Str("codigo", p.Code).Str("codigo_barras", p.Barcode).Msg("producto creado")
	return toProductResponse(p), nil
}

func (uc *UseCase) freeBarcode(ctx context.Context, products repository.ProductRepository, branchID string) (string, error) {
	for i := 0; i < maxBarcodeAttempts; i++ {
		candidate := uc.barcode()
		taken, err := products.GetByBarcode(ctx, candidate, branchID)
		if err != nil {
			return "", err
		}
		if taken == nil {
			return candidate, nil
		}
	}
	return "", ErrBarcodeExhausted
}

// Update aplica solo los campos presentes. Código y código de barras siguen siendo únicos en la sucursal.
func (uc *UseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if in.Code != nil {
		code := strings.TrimSpace(*in.Code)
		if code == "" {
			return nil, domain.ErrInvalidInput
		}
		other, err := uc.products.GetByCode(ctx, code, p.BranchID)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != p.ID {
			return nil, ErrCodeTaken
		}
		p.Code = code
	}
	if in.Barcode != nil {
		barcode := strings.TrimSpace(*in.Barcode)
		if barcode != "" {
			other, err := uc.products.GetByBarcode(ctx, barcode, p.BranchID)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != p.ID {
				return nil, ErrBarcodeTaken
			}
		}
		p.Barcode = barcode
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		p.Price = *in.Price
	}
	if in.Active != nil {
		p.Active = *in.Active
	}
	if err := uc.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Deactivate baja lógica: las ventas históricas siguen apuntando al producto.
func (uc *UseCase) Deactivate(ctx context.Context, actor entity.Actor, id string) error {
	p, err := uc.load(ctx, actor, id)
	if err != nil {
		return err
	}
	if !p.Active {
		return nil
	}
	p.Active = false
	if err := uc.products.Update(ctx, p); err != nil {
		return err
	}
	uc.log.Info().Str("product_id", p.ID).Str("user_id", actor.UserID).Msg("producto desactivado")
	return nil
}

// Get producto de la sucursal por ID.
func (uc *UseCase) Get(ctx context.Context, actor entity.Actor, id string) (*dto.ProductResponse, error) {
	p, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// GetByBarcode búsqueda del lector de la caja.
func (uc *UseCase) GetByBarcode(ctx context.Context, actor entity.Actor, barcode string) (*dto.ProductResponse, error) {
	if strings.TrimSpace(barcode) == "" {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.products.GetByBarcode(ctx, strings.TrimSpace(barcode), actor.BranchID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(p), nil
}

// List productos activos de la sucursal; autoBarcode deja solo los de EAN-13 generado.
func (uc *UseCase) List(ctx context.Context, actor entity.Actor, autoBarcode bool, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.products.List(ctx, repository.ProductFilter{
		BranchID:    actor.BranchID,
		AutoBarcode: autoBarcode,
		Limit:       page.Limit,
		Offset:      page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func (uc *UseCase) load(ctx context.Context, actor entity.Actor, id string) (*entity.Product, error) {
	p, err := uc.products.GetByID(ctx, id, actor.BranchID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		BranchID:    p.BranchID,
		Code:        p.Code,
		Barcode:     p.Barcode,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
	}
}
