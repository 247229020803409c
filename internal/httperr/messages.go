package httperr

var messages = map[string]string{
	"invalid_request":              "Dados inválidos.",
	"invalid_date":                 "Formato de data inválido. Use YYYY-MM-DD.",
	"invalid_time":                 "Formato de horário inválido. Use HH:MM.",
	"invalid_date_or_time":         "Data ou hora inválida.",
	"invalid_date_range":           "Período inválido.",
	"invalid_year":                 "Ano inválido.",
	"invalid_month":                "Mês inválido.",
	"invalid_id":                   "Identificador inválido.",
	"invalid_status":               "Status inválido.",
	"invalid_override":             "Status de disponibilidade inválido. Use available ou unavailable.",
	"unit_not_found":               "Unidade não encontrada.",
	"massagista_not_found":         "Massagista não encontrada.",
	"service_not_found":            "Serviço não encontrado.",
	"booking_not_found":            "Agendamento não encontrado.",
	"slot_unavailable":             "Horário não disponível.",
	"booking_status_conflict":      "O agendamento foi alterado por outra pessoa. Recarregue e tente novamente.",
	"email_already_exists":         "E-mail já cadastrado.",
	"cpf_already_exists":           "CPF já cadastrado.",
	"invalid_email_domain":         "O domínio do e-mail informado não parece ser válido.",
	"invalid_credentials":          "E-mail ou senha inválidos.",
	"inactive_user":                "Usuário inativo.",
	"user_not_found":               "Usuário não encontrado.",
	"invalid_reset_token":          "Token inválido ou expirado.",
	"invalid_token":                "Token inválido.",
	"missing_authorization_header": "Token de acesso não informado.",
	"invalid_authorization_header": "Cabeçalho Authorization inválido. Use Bearer <token>.",
	"forbidden":                    "Acesso não permitido.",
	"invalid_image":                "Imagem inválida.",
	"image_too_large":              "Imagem muito grande.",
	"avatar_upload_disabled":       "Envio de foto indisponível.",
	"internal_error":               "Erro interno. Tente novamente mais tarde.",
}

// Message returns the user-facing message for a business code.
func Message(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return code
}
