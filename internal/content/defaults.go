package content

const unsplash = "https://images.unsplash.com/"

const appStatus = "Funcionalidade do App (Em Breve)"

// Defaults returns a fresh copy of the compiled-in document. Callers own the
// result.
func Defaults() Document {
	return Document{
		Sections: map[SectionKey]Fields{
			SectionHeader: {
				"launchBadge": "Lançamento em breve",
			},
			SectionRegistrationModal: {
				"title":            "Mantenha-se Conectado",
				"description":      "Deixe seu contato para ser um dos primeiros a conhecer o refúgio digital da fé cristã.",
				"nameLabel":        "Seu Nome",
				"namePlaceholder":  "Como podemos te chamar?",
				"emailLabel":       "Seu Melhor E-mail",
				"emailPlaceholder": "exemplo@email.com",
				"buttonText":       "Confirmar Interesse",
				"closeText":        "Talvez mais tarde",
				"successTitle":     "Interesse registrado!",
				"successMessage":   "Obrigado por querer fazer parte do Oremos Juntos. Enviaremos um e-mail assim que as portas do santuário digital se abrirem.",
			},
			SectionHero: {
				"visible":         true,
				"badge":           "O Futuro da Comunhão Digital",
				"title":           "Oremos Juntos: Um Refúgio em Breve.",
				"description":     "Estamos construindo um espaço sagrado, livre de distrações, focado no que realmente importa: sua conexão com o Criador e com os irmãos.",
				"ctaPrimary":      "Seja avisado no lançamento",
				"backgroundImage": unsplash + "photo-1518101645466-7795885ff8f8?q=80&w=2000&auto=format&fit=crop",
			},
			SectionComingSoon: {
				"visible":        true,
				"title":          "Uma Experiência Sem Ruído",
				"description":    "O Oremos Juntos não é apenas um app, é um santuário digital. Criado para substituir o caos das redes sociais por momentos de oração, intercessão e arte cristã inspiradora.",
				"launchDateText": "Lançamento previsto para Março de 2026.",
			},
			SectionManifesto: {
				"visible":    true,
				"title":      "Resgate o Sagrado no Digital",
				"paragraph1": "Vivemos em uma era de notificações incessantes e algoritmos de atenção. O Oremos Juntos nasce do desejo de silenciar o mundo para ouvir a voz de Deus. Um lugar onde a tecnologia serve ao espírito.",
				"paragraph2": "Apoio mútuo real, círculos de oração significativos e uma curadoria de arte que eleva a alma. É o que preparamos para você.",
				"image":      unsplash + "photo-1438210125265-429381f218a0?q=80&w=2000&auto=format&fit=crop",
			},
			SectionSupport: {
				"visible":         true,
				"mainButton":      "Apoiar o projeto",
				"badge":           "APOIO VOLUNTÁRIO",
				"description":     "O apoio ao Oremos Juntos é voluntário e destinado exclusivamente à manutenção técnica e operacional do projeto. Sua contribuição ajuda a manter o site no ar, seguro e acessível a todos.",
				"cardTitle":       "Contribuição",
				"cardDescription": "O apoio ao Oremos Juntos é voluntário e destinado exclusivamente à manutenção técnica e operacional do projeto. Sua contribuição ajuda a manter o site no ar, seguro e acessível a todos.",
				"cardButton":      "Apoiar o projeto",
				"backgroundImage": "",
			},
			SectionTestimonial: {
				"visible": true,
				"quote":   "A ideia de ter um espaço focado exclusivamente na oração é o que a nossa geração mais precisa agora. É um respiro espiritual no meio do dia.",
				"author":  "Dra. Helena Mendes",
				"role":    "Líder de Pequenos Grupos",
				"avatar":  unsplash + "photo-1544005313-94ddf0286df2?q=80&w=1976&auto=format&fit=crop",
			},
			SectionFooterCta: {
				"visible":         true,
				"title":           "Quer ser um dos primeiros a entrar?",
				"description":     "Junte-se à nossa lista de espera exclusiva e receba atualizações sobre o progresso do santuário digital.",
				"button":          "Quero entrar na lista",
				"subtext":         "Vagas limitadas para a fase beta.",
				"backgroundImage": "https://www.transparenttextures.com/patterns/paper-fibers.png",
			},
			SectionFooter: {
				"visible":       true,
				"websiteLink":   "www.oremosjuntos.com.br",
				"copyrightText": "© 2026 Oremos Juntos. Projeto independente e contínuo.",
			},
			SectionPages: {
				"privacy": "Respeitamos seu silêncio e sua privacidade. Seus dados são protegidos e tratados com total confidencialidade.",
				"terms":   "O uso do site é focado na edificação mútua e respeito comunitário.",
				"contact": "contato@oremosjuntos.com.br",
			},
			SectionSettings: {
				"cmsPassword":       "123",
				"googleAnalyticsId": "",
				"supportLink":       "https://apoia.se/oremosjuntos",
			},
			SectionNotFound: {
				"title":      "404",
				"subtitle":   "Um caminho inesperado",
				"message":    "Às vezes, nos perdemos para encontrar algo novo. Mas esta página, especificamente, não existe. Vamos voltar para casa?",
				"buttonText": "Voltar para o santuário",
				"footerText": "Oremos Juntos",
			},
			SectionAppShowcase: {
				"visible":     true,
				"title":       "O App que te conecta ao céu",
				"description": "Cada detalhe da interface foi pensado para criar foco, tranquilidade e reverência. Conheça as telas que farão parte do seu dia a dia.",
				"videoUrl":    "",
				"screenImage": unsplash + "photo-1512941937669-90a1b58e7e9c?q=80&w=1000&auto=format&fit=crop",
				"badges":      true,
			},
		},
		Gallery: ListSection[GalleryCard]{
			Fields: Fields{
				"visible":      true,
				"sectionTitle": "Cards que Edificam",
				"sectionDesc":  "Veja exemplos das mensagens e artes que nossa comunidade compartilha diariamente para fortalecer a fé.",
			},
			Items: []GalleryCard{
				{ID: "1", Title: "Feliz Domingo", ImageURL: unsplash + "photo-1490730141103-6cac27aaab94?q=80&w=800&auto=format&fit=crop"},
				{ID: "2", Title: "Gratidão", ImageURL: unsplash + "photo-1470770841072-f978cf4d019e?q=80&w=800&auto=format&fit=crop"},
				{ID: "3", Title: "Confiança", ImageURL: unsplash + "photo-1501854140801-50d01698950b?q=80&w=800&auto=format&fit=crop"},
				{ID: "4", Title: "Oração do Dia", ImageURL: unsplash + "photo-1464822759023-fed622ff2c3b?q=80&w=800&auto=format&fit=crop"},
			},
		},
		Features: ListSection[FeatureItem]{
			Fields: Fields{
				"visible":      true,
				"sectionBadge": "Breve no App",
				"sectionTitle": "Feito para sua Jornada",
			},
			Items: []FeatureItem{
				{ID: "1", Title: "Santuário Privado", Desc: "Um espaço seguro para seus clamores mais profundos, com privacidade total.", Icon: "auto_stories"},
				{ID: "2", Title: "IA Inspiradora", Desc: "Tecnologia que sugere versículos e reflexões baseadas no seu momento.", Icon: "psychology_alt"},
				{ID: "3", Title: "Rede de Intercessão", Desc: "Nunca ore sozinho. Conecte-se a uma corrente mundial de irmãos.", Icon: "groups_3"},
			},
		},
		AppFeatures: ListSection[AppFeatureItem]{
			Fields: Fields{
				"visible": true,
			},
			Items: []AppFeatureItem{
				{
					ID:          "altar",
					Key:         "altar",
					Title:       "O Altar",
					Description: "Seu espaço seguro digital. Aqui você registra seus pedidos de oração privados, cria diários espirituais e mantém sua conversa com Deus organizada e segura.",
					StatusText:  appStatus,
					Icon:        "church",
				},
				{
					ID:          "groups",
					Key:         "groups",
					Title:       "Grupos de Oração",
					Description: "Comunhão real. Crie ou participe de círculos de intercessão, compartilhe motivos de gratidão e ore uns pelos outros sem as distrações das redes sociais convencionais.",
					StatusText:  appStatus,
					Icon:        "groups",
				},
				{
					ID:          "journey",
					Key:         "journey",
					Title:       "Jornada Diária",
					Description: "Conteúdo curado para seu crescimento. Receba devocionais, versículos do dia e cards de arte cristã selecionados para edificar sua fé diariamente.",
					StatusText:  appStatus,
					Icon:        "auto_stories",
				},
				{
					ID:          "guardian",
					Key:         "guardian",
					Title:       "Guardião",
					Description: "Gerencie seu perfil e suas preferências. O Guardião cuida da sua privacidade, configurações de notificação (apenas as essenciais) e personalização do santuário.",
					StatusText:  appStatus,
					Icon:        "grade",
				},
			},
		},
		SectionOrder: []SectionKey{
			SectionHero,
			SectionComingSoon,
			SectionGallery,
			SectionAppShowcase,
			SectionFeatures,
			SectionManifesto,
			SectionTestimonial,
			SectionSupport,
			SectionFooterCta,
		},
	}
}
