package config

const (
	// Database errors
	ErrInitializeDatabaseFmt = "Failed to initialize database: %v"

	// Admin errors
	ErrLoginRequired       = "Acesso restrito. Informe a senha."
	ErrWrongPassword       = "Senha incorreta."
	ErrBufferExpired       = "Sua sessão de edição expirou. Recarregue a página."
	ErrBufferBusy          = "Outra alteração estava em andamento. Tente novamente."
	ErrInvalidEdit         = "Não foi possível aplicar a alteração."
	ErrInternalServerError = "Internal server error"

	// Leads errors
	ErrLeadInvalid = "Informe seu nome e um e-mail válido."
	ErrLeadSave    = "Não foi possível registrar seu interesse. Verifique sua conexão."
	ErrLeadUpdate  = "Não foi possível atualizar o contato."
	ErrLeadDelete  = "Não foi possível remover o contato."
	ErrLeadsLoad   = "Não foi possível carregar os contatos."

	// Upload errors
	ErrUploadFailed      = "Ocorreu um problema ao enviar a imagem. Tente novamente."
	ErrUploadUnsupported = "Envie apenas arquivos de imagem."
	ErrUploadTooLarge    = "Imagem muito grande."

	// Config errors
	ErrWriteConfigContentFmt = "Failed to write config content: %v"
	ErrCreateTempFileFmt     = "Failed to create temp file: %v"
)
