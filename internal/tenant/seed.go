package tenant

// QuestionKeys are the nine fixed questionnaire fields every tenant shares.
// Labels differ per tenant; the keys do not.
var QuestionKeys = []string{
	"dispositif",
	"engagement",
	"identification",
	"formation",
	"procedure",
	"dispositifAlert",
	"certifierISO",
	"mepSystem",
	"intention",
}

// SeedCatalog registers the national deployments currently in production.
func SeedCatalog(c *Catalog) {
	c.Register(Config{
		ID:            "congo",
		Name:          "République du Congo",
		CourseTitle:   "Anticorruption et Éthique des affaires",
		PassThreshold: DefaultPassThreshold,
		VideoURLs: [2]string{
			"https://assets.certform.example/congo/module-1.mp4",
			"https://assets.certform.example/congo/module-2.mp4",
		},
		QuestionLabels: defaultQuestionLabels(),
	})
	c.Register(Config{
		ID:            "senegal",
		Name:          "Sénégal",
		CourseTitle:   "Anticorruption et Éthique des affaires",
		PassThreshold: DefaultPassThreshold,
		VideoURLs: [2]string{
			"https://assets.certform.example/senegal/module-1.mp4",
			"https://assets.certform.example/senegal/module-2.mp4",
		},
		QuestionLabels: defaultQuestionLabels(),
	})
}

func defaultQuestionLabels() map[string]string {
	return map[string]string{
		"dispositif":      "Disposez-vous d'un dispositif anticorruption ?",
		"engagement":      "La direction a-t-elle pris un engagement formel ?",
		"identification":  "Les risques de corruption sont-ils identifiés ?",
		"formation":       "Une formation anticorruption est-elle en place ?",
		"procedure":       "Des procédures de contrôle existent-elles ?",
		"dispositifAlert": "Un dispositif d'alerte interne existe-t-il ?",
		"certifierISO":    "Envisagez-vous une certification ISO 37001 ?",
		"mepSystem":       "Date de mise en place du système",
		"intention":       "Intention de déploiement complémentaire",
	}
}
