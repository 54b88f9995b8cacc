// Package customers clientes de la sucursal y su cuenta corriente.
package customers

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/application/ports"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	domaincust "github.com/jhoicas/pos-backoffice/internal/domain/customers"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
	"github.com/jhoicas/pos-backoffice/pkg/logger"
	"github.com/jhoicas/pos-backoffice/pkg/validator"
)

// ErrDocumentTaken otro cliente de la sucursal ya tiene el documento.
var ErrDocumentTaken = fmt.Errorf("%w: documento ya registrado en la sucursal", domain.ErrDuplicate)

// UseCase ABM de clientes y movimientos de cuenta corriente.
type UseCase struct {
	tx        ports.TxRunner
	customers repository.CustomerRepository
	accounts  repository.AccountRepository
	log       *logger.Logger
	now       func() time.Time
}

// NewUseCase construye el caso de uso. Los repos sueltos se usan solo para lecturas.
func NewUseCase(tx ports.TxRunner, customers repository.CustomerRepository, accounts repository.AccountRepository, log *logger.Logger) *UseCase {
	return &UseCase{tx: tx, customers: customers, accounts: accounts, log: log.Component("clientes"), now: time.Now}
}

// Create da de alta el cliente. El documento es único en la sucursal.
func (uc *UseCase) Create(ctx context.Context, actor entity.Actor, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	c, err := fromRequest(in)
	if err != nil {
		return nil, err
	}
	c.ID = uuid.New().String()
	c.BranchID = actor.BranchID
	c.CreatedAt = uc.now()

	err = uc.tx.Run(ctx, func(repos repository.Repos) error {
		taken, err := repos.Customers().GetByDocument(ctx, c.Document, c.BranchID)
		if err != nil {
			return err
		}
		if taken != nil {
			return ErrDocumentTaken
		}
		return repos.Customers().Create(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("cliente_id", c.ID).Str("documento", c.Document).Msg("cliente creado")
	return toCustomerResponse(c), nil
}

// Get cliente de la sucursal; ErrNotFound si no existe.
func (uc *UseCase) Get(ctx context.Context, actor entity.Actor, id string) (*dto.CustomerResponse, error) {
	c, err := uc.load(ctx, uc.customers, actor, id)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// Update reemplaza los datos del cliente.
func (uc *UseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	c, err := fromRequest(in)
	if err != nil {
		return nil, err
	}
	err = uc.tx.Run(ctx, func(repos repository.Repos) error {
		current, err := uc.load(ctx, repos.Customers(), actor, id)
		if err != nil {
			return err
		}
		taken, err := repos.Customers().GetByDocument(ctx, c.Document, actor.BranchID)
		if err != nil {
			return err
		}
		if taken != nil && taken.ID != current.ID {
			return ErrDocumentTaken
		}
		c.ID = current.ID
		c.BranchID = current.BranchID
		c.CreatedAt = current.CreatedAt
		return repos.Customers().Update(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// Delete borra el cliente. Con movimientos de cuenta corriente devuelve ErrCustomerHasAccount.
func (uc *UseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	return uc.tx.Run(ctx, func(repos repository.Repos) error {
		c, err := uc.load(ctx, repos.Customers(), actor, id)
		if err != nil {
			return err
		}
		movs, err := repos.Accounts().ListByCustomer(ctx, c.ID, actor.BranchID)
		if err != nil {
			return err
		}
		if len(movs) > 0 {
			return domain.ErrCustomerHasAccount
		}
		deleted, err := repos.Customers().Delete(ctx, c.ID, actor.BranchID)
		if err != nil {
			return err
		}
		if !deleted {
			return domain.ErrNotFound
		}
		return nil
	})
}

// Search busca por nombre, apellido, documento o teléfono.
func (uc *UseCase) Search(ctx context.Context, actor entity.Actor, query string, page dto.PageRequest) (*dto.CustomerListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.customers.Search(ctx, repository.CustomerFilter{
		BranchID: actor.BranchID,
		Query:    strings.TrimSpace(query),
		Limit:    page.Limit,
		Offset:   page.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := &dto.CustomerListResponse{
		Data: make([]dto.CustomerResponse, 0, len(list)),
		Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for _, c := range list {
		out.Data = append(out.Data, *toCustomerResponse(c))
	}
	return out, nil
}

var csvHeader = []string{"id", "apellido", "nombre", "documento", "telefono", "email", "direccion", "notas", "alta"}

// ExportCSV escribe todos los clientes de la sucursal en w, ordenados por apellido y nombre.
func (uc *UseCase) ExportCSV(ctx context.Context, actor entity.Actor, w io.Writer) error {
	list, _, err := uc.customers.Search(ctx, repository.CustomerFilter{BranchID: actor.BranchID})
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, c := range list {
		record := []string{c.ID, c.LastName, c.FirstName, c.Document, c.Phone, c.Email, c.Address, c.Notes, c.CreatedAt.Format(time.DateOnly)}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// RecordMovement agrega un movimiento a la cuenta corriente del cliente y devuelve el saldo resultante.
// La sucursal y el usuario salen del actor. Una venta referenciada debe ser de la sucursal y,
// si tiene cliente, del mismo cliente.
func (uc *UseCase) RecordMovement(ctx context.Context, actor entity.Actor, customerID string, in dto.AccountMovementRequest) (*dto.AccountMovementResponse, error) {
	if !domaincust.ValidAccountKind(in.Kind) {
		return nil, domain.ErrInvalidAccountKind
	}
	if !domaincust.ValidAmount(in.Kind, in.Amount) {
		return nil, domain.ErrInvalidInput
	}
	m := &entity.AccountMovement{
		ID:        uuid.New().String(),
		Kind:      in.Kind,
		Amount:    in.Amount,
		Reference: strings.TrimSpace(in.Reference),
		Detail:    strings.TrimSpace(in.Detail),
		UserID:    actor.UserID,
		BranchID:  actor.BranchID,
		CreatedAt: uc.now(),
	}
	var entries []domaincust.Entry
	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		c, err := uc.load(ctx, repos.Customers(), actor, customerID)
		if err != nil {
			return err
		}
		m.CustomerID = c.ID
		if saleID := strings.TrimSpace(in.SaleID); saleID != "" {
			if !validator.IsUUID(saleID) {
				return domain.ErrNotFound
			}
			sale, err := repos.Sales().GetByID(ctx, saleID, actor.BranchID)
			if err != nil {
				return err
			}
			if sale == nil {
				return domain.ErrNotFound
			}
			if sale.CustomerID != nil && *sale.CustomerID != c.ID {
				return domain.ErrInvalidInput
			}
			m.SaleID = &sale.ID
		}
		if err := repos.Accounts().Create(ctx, m); err != nil {
			return err
		}
		movs, err := repos.Accounts().ListByCustomer(ctx, c.ID, actor.BranchID)
		if err != nil {
			return err
		}
		entries, _ = domaincust.Statement(movs)
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := toMovementResponse(domaincust.Entry{Movement: m, Balance: domaincust.Signed(m)})
	for _, e := range entries {
		if e.Movement.ID == m.ID {
			out = toMovementResponse(e)
		}
	}
	uc.log.Info().Str("cliente_id", m.CustomerID).Str("tipo", m.Kind).Str("monto", m.Amount.StringFixed(2)).
		Str("saldo", out.Balance.StringFixed(2)).Msg("movimiento de cuenta corriente")
	return &out, nil
}

// Statement cuenta corriente del cliente: saldo actual y movimientos con saldo acumulado, más recientes primero.
func (uc *UseCase) Statement(ctx context.Context, actor entity.Actor, customerID string) (*dto.AccountStatementResponse, error) {
	c, err := uc.load(ctx, uc.customers, actor, customerID)
	if err != nil {
		return nil, err
	}
	movs, err := uc.accounts.ListByCustomer(ctx, c.ID, actor.BranchID)
	if err != nil {
		return nil, err
	}
	entries, balance := domaincust.Statement(movs)
	out := &dto.AccountStatementResponse{
		Customer:  *toCustomerResponse(c),
		Balance:   balance,
		Movements: make([]dto.AccountMovementResponse, 0, len(entries)),
	}
	for i := len(entries) - 1; i >= 0; i-- {
		out.Movements = append(out.Movements, toMovementResponse(entries[i]))
	}
	return out, nil
}

func (uc *UseCase) load(ctx context.Context, customers repository.CustomerRepository, actor entity.Actor, id string) (*entity.Customer, error) {
	if !validator.IsUUID(id) {
		return nil, domain.ErrNotFound
	}
	c, err := customers.GetByID(ctx, id, actor.BranchID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func fromRequest(in dto.CustomerRequest) (*entity.Customer, error) {
	c := &entity.Customer{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Document:  strings.TrimSpace(in.Document),
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		Address:   strings.TrimSpace(in.Address),
		Notes:     in.Notes,
	}
	if c.FirstName == "" || c.Document == "" || !validator.IsPhone(c.Phone) || !validator.IsEmail(c.Email) {
		return nil, domain.ErrInvalidInput
	}
	return c, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:        c.ID,
		BranchID:  c.BranchID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Document:  c.Document,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
	}
}

func toMovementResponse(e domaincust.Entry) dto.AccountMovementResponse {
	m := e.Movement
	return dto.AccountMovementResponse{
		ID:         m.ID,
		CustomerID: m.CustomerID,
		Kind:       m.Kind,
		Amount:     m.Amount,
		Reference:  m.Reference,
		Detail:     m.Detail,
		SaleID:     m.SaleID,
		SaleCode:   m.SaleCode,
		UserID:     m.UserID,
		UserName:   m.UserName,
		Balance:    e.Balance,
		CreatedAt:  m.CreatedAt,
	}
}
