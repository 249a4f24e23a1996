package seed

import (
	"log"

	"Yatube/models"

	"gorm.io/gorm"
)

var users = []models.User{
	{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password",
	},
	{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "password",
	},
}

var groups = []models.Group{
	{
		Title:       "Travel notes",
		Slug:        "travel",
		Description: "Trips, routes and places worth writing home about",
	},
	{
		Title:       "Kitchen experiments",
		Slug:        "kitchen",
		Description: "Recipes that worked and the ones that did not",
	},
}

var posts = []models.Post{
	{
		Text: "First week in the mountains: the trail above the lake is finally open again.",
	},
	{
		Text: "Tried fermenting the dough for three days this time. Completely worth it.",
	},
}

// Load resets the schema and fills it with a small demo dataset. Meant for
// local development only; it drops every table first.
func Load(db *gorm.DB) {
	err := db.Migrator().DropTable(
		&models.Comment{},
		&models.Follow{},
		&models.Post{},
		&models.Group{},
		&models.User{},
	)
	if err != nil {
		log.Fatalf("cannot drop tables: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
	); err != nil {
		log.Fatalf("cannot migrate tables: %v", err)
	}

	for i := range groups {
		if err := db.Create(&groups[i]).Error; err != nil {
			log.Fatalf("cannot seed groups table: %v", err)
		}
	}

	for i := range users {
		users[i].Prepare()
		if err := db.Create(&users[i]).Error; err != nil {
			log.Fatalf("cannot seed users table: %v", err)
		}

		posts[i].AuthorID = users[i].ID
		posts[i].GroupID = &groups[i].ID
		if err := db.Create(&posts[i]).Error; err != nil {
			log.Fatalf("cannot seed posts table: %v", err)
		}
	}

	// alice follows bob so the demo feed is not empty.
	follow := models.Follow{UserID: users[0].ID, AuthorID: users[1].ID}
	if _, err := follow.SaveFollow(db); err != nil {
		log.Fatalf("cannot seed follows table: %v", err)
	}
}
