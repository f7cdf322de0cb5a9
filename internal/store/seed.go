package store

import "github.com/celine/taskdeck/internal/domain"

// SeedData is a complete dataset for Store.Seed.
type SeedData struct {
	Users    []domain.User
	Projects []domain.Project
	Tasks    []domain.Task
	Comments []domain.Comment
}

// DemoData returns the built-in demo dataset: four accounts, three projects,
// five tasks and four comments. Any of the seeded emails logs in with any
// password.
func DemoData() SeedData {
	return SeedData{
		Users: []domain.User{
			{ID: "1", Name: "Alice Martin", Email: "alice@company.com", Role: domain.RoleAdmin},
			{ID: "2", Name: "Bob Dubois", Email: "bob@company.com", Role: domain.RoleMember},
			{ID: "3", Name: "Claire Laurent", Email: "claire@company.com", Role: domain.RoleMember},
			{ID: "4", Name: "David Rodriguez", Email: "david@company.com", Role: domain.RoleAdmin},
		},
		Projects: []domain.Project{
			{
				ID:          "1",
				Name:        "Site Web E-commerce",
				Description: "Développement d'une plateforme e-commerce moderne",
				StartDate:   "2024-01-15",
				EndDate:     "2024-06-30",
				Status:      domain.ProjectActive,
				TeamMembers: []string{"1", "2", "3"},
			},
			{
				ID:          "2",
				Name:        "Application Mobile",
				Description: "Application mobile cross-platform pour la gestion des commandes",
				StartDate:   "2024-02-01",
				EndDate:     "2024-08-15",
				Status:      domain.ProjectActive,
				TeamMembers: []string{"2", "3", "4"},
			},
			{
				ID:          "3",
				Name:        "Refonte Infrastructure",
				Description: "Migration vers le cloud et modernisation de l'infrastructure",
				StartDate:   "2023-11-01",
				EndDate:     "2024-03-31",
				Status:      domain.ProjectCompleted,
				TeamMembers: []string{"1", "4"},
			},
		},
		Tasks: []domain.Task{
			{
				ID:          "1",
				Title:       "Design de l'interface utilisateur",
				Description: "Créer les maquettes et prototypes pour l'interface principale",
				Status:      domain.TaskDone,
				DueDate:     "2024-02-15",
				ProjectID:   "1",
				AssignedTo:  "3",
				Priority:    domain.PriorityHigh,
			},
			{
				ID:          "2",
				Title:       "Configuration de la base de données",
				Description: "Mettre en place la structure de données et les relations",
				Status:      domain.TaskInProgress,
				DueDate:     "2024-02-20",
				ProjectID:   "1",
				AssignedTo:  "2",
				Priority:    domain.PriorityHigh,
			},
			{
				ID:          "3",
				Title:       "Intégration du système de paiement",
				Description: "Implémenter Stripe pour les transactions",
				Status:      domain.TaskTodo,
				DueDate:     "2024-03-10",
				ProjectID:   "1",
				AssignedTo:  "1",
				Priority:    domain.PriorityMedium,
			},
			{
				ID:          "4",
				Title:       "Tests d'interface",
				Description: "Tests unitaires et d'intégration pour l'application mobile",
				Status:      domain.TaskInProgress,
				DueDate:     "2024-02-25",
				ProjectID:   "2",
				AssignedTo:  "4",
				Priority:    domain.PriorityMedium,
			},
			{
				ID:          "5",
				Title:       "Déploiement en production",
				Description: "Configuration des serveurs et déploiement",
				Status:      domain.TaskDone,
				DueDate:     "2024-03-25",
				ProjectID:   "3",
				AssignedTo:  "1",
				Priority:    domain.PriorityHigh,
			},
		},
		Comments: []domain.Comment{
			{
				ID:        "1",
				Content:   "J'ai terminé la première version des maquettes. Elles sont disponibles sur Figma.",
				TaskID:    "1",
				UserID:    "3",
				CreatedAt: "2024-02-10T10:30:00Z",
			},
			{
				ID:        "2",
				Content:   "Excellente base ! J'ai quelques suggestions pour améliorer l'UX.",
				TaskID:    "1",
				UserID:    "1",
				CreatedAt: "2024-02-11T14:15:00Z",
			},
			{
				ID:        "3",
				Content:   "La base de données est configurée. Je travaille maintenant sur l'API.",
				TaskID:    "2",
				UserID:    "2",
				CreatedAt: "2024-02-18T09:45:00Z",
			},
			{
				ID:        "4",
				Content:   "Besoin d'aide pour les tests de régression sur iOS.",
				TaskID:    "4",
				UserID:    "4",
				CreatedAt: "2024-02-22T16:20:00Z",
			},
		},
	}
}
