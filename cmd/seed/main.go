// Seeds a handful of approved sample doctors so the public directory and
// the recommendation join have data to work with. Safe to run repeatedly;
// existing usernames are skipped.
package main

import (
	"errors"
	"log"

	"smart_health/internal/config"
	"smart_health/internal/identity"
	"smart_health/internal/models"
)

var sampleDoctors = []identity.RegisterInput{
	{
		FirstName: "Sarah", LastName: "Johnson", Username: "dr.sarah",
		Email: "sarah.johnson@hospital.com", Contact: "555-0101",
		Address:        "123 Medical Center, New York, NY 10001",
		Specialization: "Cardiologist",
	},
	{
		FirstName: "Michael", LastName: "Chen", Username: "dr.michael",
		Email: "michael.chen@hospital.com", Contact: "555-0102",
		Address:        "456 Heart Clinic, Los Angeles, CA 90001",
		Specialization: "Cardiologist",
	},
	{
		FirstName: "Emily", LastName: "Rodriguez", Username: "dr.emily",
		Email: "emily.rodriguez@hospital.com", Contact: "555-0103",
		Address:        "789 Cardiac Institute, Chicago, IL 60601",
		Specialization: "Cardiac Surgeon",
	},
	{
		FirstName: "David", LastName: "Williams", Username: "dr.david",
		Email: "david.williams@hospital.com", Contact: "555-0104",
		Address:        "321 Health Plaza, Houston, TX 77001",
		Specialization: "Cardiologist",
	},
	{
		FirstName: "Lisa", LastName: "Anderson", Username: "dr.lisa",
		Email: "lisa.anderson@hospital.com", Contact: "555-0105",
		Address:        "654 Medical District, Phoenix, AZ 85001",
		Specialization: "Cardiovascular Specialist",
	},
}

func main() {
	config.InitDB()

	log.Println("Seeding sample doctors...")
	for _, in := range sampleDoctors {
		in.Role = models.RoleDoctor
		in.Password = "doctor123"
		in.Approved = true

		if _, err := identity.Register(config.DB, in); err != nil {
			if errors.Is(err, identity.ErrDuplicateIdentity) {
				log.Printf("Doctor %s already exists, skipping", in.Username)
				continue
			}
			log.Fatalf("could not seed doctor %s: %v", in.Username, err)
		}
		log.Printf("Created doctor profile for Dr. %s %s", in.FirstName, in.LastName)
	}
	log.Println("Doctor seeding completed")
}
