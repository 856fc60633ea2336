package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agenda-core/internal/httperr"
)

// --------------------------------------------------
// Mapa erro de negócio → resposta HTTP
// --------------------------------------------------

var businessMessages = map[string]string{
	"invalid_request":               "Dados inválidos.",
	"invalid_date_or_time":          "Data ou hora inválida.",
	"start_in_past":                 "O horário já passou.",
	"advance_limit_exceeded":        "Horário além do limite de antecedência.",
	"outside_working_hours":         "Fora do horário de atendimento.",
	"slot_unavailable":              "Horário indisponível.",
	"cancellation_window_violated":  "Fora da janela de cancelamento.",
	"invalid_state":                 "Operação não permitida no estado atual.",
	"invalid_recurrence":            "Padrão de recorrência inválido.",
	"staff_not_qualified":           "Profissional não realiza esse serviço.",
	"appointment_not_finished":      "O agendamento ainda não terminou.",
	"service_not_found":             "Serviço não encontrado.",
	"staff_not_found":               "Profissional não encontrado.",
	"customer_not_found":            "Cliente não encontrado.",
	"appointment_not_found":         "Agendamento não encontrado.",
	"waitlist_entry_not_found":      "Entrada da lista de espera não encontrada.",
	"deposit_failed":                "Não foi possível gerar a cobrança do sinal.",
	"export_not_configured":         "Exportação não configurada.",
	"failed_to_create_appointment":  "Erro ao criar agendamento.",
	"failed_to_cancel":              "Erro ao cancelar agendamento.",
	"failed_to_reschedule":          "Erro ao remarcar agendamento.",
	"failed_to_update_appointment":  "Erro ao atualizar agendamento.",
	"failed_to_update_waitlist":     "Erro ao atualizar lista de espera.",
	"failed_to_create_series":       "Erro ao criar série recorrente.",
}

// respondError traduz o erro do use case em status + envelope padrão.
func respondError(c *gin.Context, err error) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	msg := businessMessages[code]
	if msg == "" {
		msg = "Operação não permitida."
	}

	switch {
	case code == "slot_unavailable":
		httperr.Conflict(c, code, msg)
	case strings.HasSuffix(code, "_not_found"):
		httperr.NotFound(c, code, msg)
	case strings.HasPrefix(code, "failed_") || code == "deposit_failed":
		httperr.Internal(c, code, msg)
	default:
		httperr.BadRequest(c, code, msg)
	}
}
