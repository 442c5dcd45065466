package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/roamstay/hotel-booking-backend/internal/config"
	"github.com/roamstay/hotel-booking-backend/internal/database"
	"github.com/roamstay/hotel-booking-backend/internal/models"
)

// Starter catalog loaded into empty environments.
var seedHotels = []models.Hotel{
	{
		Name:        "Grand Plaza Hotel",
		Location:    "New York City",
		Description: "Luxury hotel in the heart of Manhattan with stunning city views.",
		ImageURL:    "https://images.unsplash.com/photo-1566073771259-6a8506099945?w=400",
		Amenities:   pq.StringArray{"WiFi", "Pool", "Gym", "Restaurant", "Spa"},
		RoomTypes: []models.RoomType{
			{Code: "standard", Name: "Standard", NightlyPrice: 299, TotalUnits: 10},
			{Code: "deluxe", Name: "Deluxe", NightlyPrice: 399, TotalUnits: 6},
			{Code: "suite", Name: "Suite", NightlyPrice: 599, TotalUnits: 2},
		},
	},
	{
		Name:        "Ocean View Resort",
		Location:    "Miami Beach",
		Description: "Beautiful beachfront resort with ocean views and tropical atmosphere.",
		ImageURL:    "https://images.unsplash.com/photo-1571003123894-1f0594d2b5d9?w=400",
		Amenities:   pq.StringArray{"WiFi", "Beach Access", "Pool", "Restaurant", "Bar"},
		RoomTypes: []models.RoomType{
			{Code: "ocean-view", Name: "Ocean View", NightlyPrice: 199, TotalUnits: 12},
			{Code: "ocean-front", Name: "Ocean Front", NightlyPrice: 299, TotalUnits: 8},
			{Code: "presidential-suite", Name: "Presidential Suite", NightlyPrice: 499, TotalUnits: 2},
		},
	},
	{
		Name:        "Mountain Lodge",
		Location:    "Denver, Colorado",
		Description: "Cozy mountain lodge with fireplace and scenic mountain views.",
		ImageURL:    "https://images.unsplash.com/photo-1520250497591-112f2f40a3f4?w=400",
		Amenities:   pq.StringArray{"WiFi", "Fireplace", "Hiking Trails", "Restaurant", "Spa"},
		RoomTypes: []models.RoomType{
			{Code: "standard", Name: "Standard", NightlyPrice: 159, TotalUnits: 10},
			{Code: "mountain-view", Name: "Mountain View", NightlyPrice: 229, TotalUnits: 6},
			{Code: "cabin-suite", Name: "Cabin Suite", NightlyPrice: 349, TotalUnits: 4},
		},
	},
}

func main() {
	databaseURL := flag.String("database-url", "", "Postgres connection URL (defaults to DATABASE_URL)")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using environment variables")
	}

	url := *databaseURL
	if url == "" {
		url = os.Getenv("DATABASE_URL")
	}
	if url == "" {
		logger.Fatal("Database URL is required (use -database-url or DATABASE_URL)")
	}

	db, err := database.NewConnection(config.DatabaseConfig{
		URL:                url,
		MaxConnections:     2,
		MaxIdleConnections: 1,
	})
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.EnsureSchema(db); err != nil {
		logger.Fatalf("Failed to ensure schema: %v", err)
	}

	hotels := database.NewHotelRepository(db)
	existing, err := hotels.List(database.SortByName)
	if err != nil {
		logger.Fatalf("Failed to inspect catalog: %v", err)
	}
	if len(existing) > 0 {
		logger.Infof("Catalog already has %d hotels, nothing to do", len(existing))
		return
	}

	for i := range seedHotels {
		hotel := &seedHotels[i]
		if err := hotels.Create(hotel); err != nil {
			logger.Fatalf("Failed to seed hotel %q: %v", hotel.Name, err)
		}
		logger.WithFields(logrus.Fields{
			"hotel_id":   hotel.ID,
			"name":       hotel.Name,
			"room_types": len(hotel.RoomTypes),
		}).Info("Seeded hotel")
	}

	logger.Infof("Seeded %d hotels", len(seedHotels))
}
