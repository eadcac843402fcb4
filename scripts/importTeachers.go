package main

import (
	"encoding/csv"
	"log"
	"os"
	"strings"

	"github.com/therossee/thesis-proposals-sub001/config"
	"github.com/therossee/thesis-proposals-sub001/database"
	"github.com/therossee/thesis-proposals-sub001/models"
)

// Imports the teacher registry from Teachers.csv (matricola, first
// name, last name, email, department). Existing matricole are skipped.
func main() {
	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	// Open CSV file
	file, err := os.Open("Teachers.csv")
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	// Create CSV reader
	reader := csv.NewReader(file)

	// Read all records
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	// Skip header row
	header := records[0]
	log.Printf("CSV Headers: %v", header)
	log.Printf("Total rows to import: %d", len(records)-1)

	// Map header indices
	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.TrimSpace(h)] = i
	}

	inserted := 0
	skipped := 0

	for _, row := range records[1:] {
		matricola := strings.TrimSpace(row[headerIndex["matricola"]])
		if matricola == "" {
			skipped++
			continue
		}

		var existing models.Teacher
		if err := database.Database.Db.Where("matricola = ?", matricola).First(&existing).Error; err == nil {
			skipped++
			continue
		}

		teacher := models.Teacher{
			Matricola:  matricola,
			FirstName:  strings.TrimSpace(row[headerIndex["first_name"]]),
			LastName:   strings.TrimSpace(row[headerIndex["last_name"]]),
			Email:      strings.TrimSpace(row[headerIndex["email"]]),
			Department: strings.TrimSpace(row[headerIndex["department"]]),
		}

		if err := database.Database.Db.Create(&teacher).Error; err != nil {
			log.Printf("Failed to insert teacher %s: %v", matricola, err)
			skipped++
			continue
		}
		inserted++
	}

	log.Printf("Import completed: %d inserted, %d skipped", inserted, skipped)
}
