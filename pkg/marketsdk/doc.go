/*
Package marketsdk provides the wire types and a client SDK for the market
service.

# Overview

The same request and response types are used by the server handlers and by
SDKClient, so the JSON shapes are defined in exactly one place.

	client := marketsdk.NewSDKClient("http://localhost:8080")

	// Register; the returned token is the bearer credential
	user, err := client.Signup(ctx, marketsdk.SignupRequest{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "hunter2",
	}, nil)

	// Authenticated calls go through a Session
	session := client.NewSession(user.Token)
	offer, err := session.Publish(ctx, marketsdk.PublishRequest{
		Name:  "Sneakers",
		Price: 120,
	}, marketsdk.Picture{Filename: "shoe.jpg", Data: f})

	// Public reads
	page, err := client.ListOffers(ctx, marketsdk.ListOffersParams{Title: "sneak", Page: 2})

# Errors

Non-2xx responses are returned as *APIError carrying the status code and the
server's message:

	var apiErr *marketsdk.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict {
		// email or username taken
	}

# Owners

An offer's owner is serialised differently depending on the endpoint: the
public projection (id, email, account) on reads, id and account on publish,
and a bare id string on update. Owner marshals and unmarshals all three.
*/
package marketsdk
