package records

import "github.com/example/medtranscribe/internal/models"

// SeedPatients is the demonstration patient directory the dashboard ships
// with. Real deployments replace this with an upstream roster.
func SeedPatients() []models.Patient {
	return []models.Patient{
		{
			ID: 1, FirstName: "John", LastName: "Doe", DOB: "1985-03-15",
			Gender: "male", Phone: "(555) 123-4567", Email: "john.doe@email.com",
			Address: "123 Main St, City, State 12345", LastVisit: "2024-09-15",
		},
		{
			ID: 2, FirstName: "Sarah", LastName: "Johnson", DOB: "1992-07-22",
			Gender: "female", Phone: "(555) 987-6543", Email: "sarah.j@email.com",
			Address: "456 Oak Ave, City, State 12345", LastVisit: "2024-09-18",
		},
		{
			ID: 3, FirstName: "Mike", LastName: "Wilson", DOB: "1978-11-08",
			Gender: "male", Phone: "(555) 456-7890", Email: "mike.wilson@email.com",
			Address: "789 Pine Rd, City, State 12345", LastVisit: "2024-09-20",
		},
		{ID: 4, FirstName: "Emily", LastName: "Davis", DOB: "1990-12-03", Gender: "female"},
		{ID: 5, FirstName: "Robert", LastName: "Brown", DOB: "1975-08-17", Gender: "male"},
		{ID: 6, FirstName: "Lisa", LastName: "Garcia", DOB: "1988-05-29", Gender: "female"},
		{ID: 7, FirstName: "David", LastName: "Martinez", DOB: "1982-11-14", Gender: "male"},
		{ID: 8, FirstName: "Jennifer", LastName: "Lee", DOB: "1995-04-08", Gender: "female"},
		{ID: 9, FirstName: "Michael", LastName: "Taylor", DOB: "1979-09-22", Gender: "male"},
		{ID: 10, FirstName: "Amanda", LastName: "White", DOB: "1987-01-11", Gender: "female"},
	}
}
