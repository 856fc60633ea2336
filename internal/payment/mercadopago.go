package payment

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/BruksfildServices01/agenda-core/internal/models"
)

// ======================================================
// MERCADO PAGO
// ======================================================

// MercadoPagoCollector gera a preferência de pagamento do sinal.
// A cobrança fica referenciada pelo public_id do agendamento.
type MercadoPagoCollector struct {
	prefs preference.Client
}

func NewMercadoPagoCollector(accessToken string) (*MercadoPagoCollector, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercado pago: %w", err)
	}

	return &MercadoPagoCollector{
		prefs: preference.NewClient(cfg),
	}, nil
}

func (c *MercadoPagoCollector) CreateDeposit(
	ctx context.Context,
	ap *models.Appointment,
	service *models.Service,
) (string, error) {

	amount := ap.DepositAmount
	if amount <= 0 {
		amount = service.DepositAmount
	}

	req := preference.Request{
		Items: []preference.ItemRequest{
			{
				Title:     fmt.Sprintf("Sinal - %s", service.Name),
				Quantity:  1,
				UnitPrice: amount,
			},
		},
		ExternalReference: ap.PublicID,
	}

	resource, err := c.prefs.Create(ctx, req)
	if err != nil {
		return "", fmt.Errorf("mercado pago: criar preferência: %w", err)
	}

	return resource.ID, nil
}
