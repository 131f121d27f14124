package main

import (
	"flag"
	"fmt"

	"campus360/app/config"
	"campus360/app/database"
	"campus360/app/models"
)

func main() {
	email := flag.String("email", "", "Email address for the new account")
	password := flag.String("password", "", "Password for the new account")
	fullName := flag.String("name", "", "Full name of the staff member")
	office := flag.String("office", "admissions", "Office the account belongs to (admissions, accounts)")
	flag.Parse()

	if *email == "" || *password == "" || *fullName == "" {
		fmt.Println("Usage: add_user -email <email> -password <password> -name <full name> [-office <office>]")
		return
	}

	// Initialize database connection
	config.InitDB()
	db := config.GetDB()
	if db == nil {
		fmt.Println("Failed to connect to database")
		return
	}
	defer db.Close()

	user := &models.User{
		Email:    *email,
		Password: *password,
		FullName: *fullName,
		Office:   *office,
	}

	if err := database.CreateUser(db, user); err != nil {
		fmt.Printf("Error creating user: %v\n", err)
		return
	}

	fmt.Printf("User created successfully: %s (%s, %s office)\n", user.FullName, user.Email, user.Office)
}
