// Package crudex provides an embedded Go client for the crudex resource
// engine. It opens the database directly and runs the same validation,
// ownership and paging rules as the HTTP API.
//
//	client, _ := crudex.New(ctx, crudex.WithSQLite("library.db"))
//	defer client.Close()
//
//	author, _ := client.Authors().Create(ctx, crudex.Author{Name: "Le Guin"})
//	_, _ = client.Books(author.ID).Create(ctx, crudex.Book{Title: "The Dispossessed"})
//
//	page, _ := client.Authors().List(ctx, crudex.ListOptions{Search: "guin", Order: "name"})
//	for _, a := range page.Items {
//	    fmt.Println(a.ID, a.Name)
//	}
package crudex
