package main

import (
	"context"
	"time"

	"nailbook/internal/advice"
	bookingrepo "nailbook/internal/booking/repository"
	bookingservice "nailbook/internal/booking/service"
	"nailbook/internal/calendar"
	catalogrepo "nailbook/internal/catalog/repository"
	catalogservice "nailbook/internal/catalog/service"
	customerrepo "nailbook/internal/customer/repository"
	customerservice "nailbook/internal/customer/service"
	"nailbook/internal/dates"
	"nailbook/internal/dispatch"
	"nailbook/internal/gallery"
	reviewrepo "nailbook/internal/review/repository"
	reviewservice "nailbook/internal/review/service"
	"nailbook/internal/shop/repository"
	shopservice "nailbook/internal/shop/service"
	"nailbook/internal/store"
	"nailbook/pkg/app"
	"nailbook/pkg/config"
	"nailbook/pkg/events"
	"nailbook/pkg/lock"
)

const ServiceName = "nailbook"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting booking service")

	st := store.New(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := st.Bootstrap(ctx); err != nil {
		cancel()
		cfg.Log.Fatal("Failed to bootstrap store", "error", err)
	}
	cancel()

	publisher := events.NewPublisher(cfg.Log, cfg.KafkaBrokers, cfg.KafkaTopic)
	mux := initServices(cfg, st, publisher)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(mux, dispatch.NewHealthHandler(cfg, st))
	serverApp.Run(func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Warn("Failed to close event publisher", "error", err)
		}
	})
}

func initServices(cfg *config.Config, st *store.Store, publisher events.Publisher) *dispatch.Mux {
	norm := dates.New(cfg.Location)

	settingsRepo := repository.NewMongoSettingsRepository(cfg, st)
	shop := shopservice.NewShopService(settingsRepo, norm, cfg)

	bookingRepo := bookingrepo.NewMongoBookingRepository(cfg, st)
	recordRepo := bookingrepo.NewMongoServiceRecordRepository(cfg, st)
	customers := customerservice.NewCustomerService(customerrepo.NewMongoCustomerRepository(cfg, st), norm, cfg)

	cal := calendar.New(cfg, norm)
	bookings := bookingservice.NewBookingService(
		bookingRepo,
		recordRepo,
		customers,
		shop,
		cal,
		publisher,
		norm,
		cfg,
	)

	catalog := catalogservice.NewCatalogService(catalogrepo.NewMongoCatalogRepository(cfg, st), cfg)
	reviews := reviewservice.NewReviewService(reviewrepo.NewMongoReviewRepository(cfg, st), norm, cfg)

	drive := gallery.NewDriveClient(cfg)
	galleryService := gallery.NewGalleryService(drive, shop, reviews, bookingRepo, norm, cfg)

	services := &dispatch.Services{
		Bookings:  bookings,
		Shop:      shop,
		Catalog:   catalog,
		Customers: customers,
		Reviews:   reviews,
		Gallery:   galleryService,
		Advice:    advice.New(cfg),
	}

	mux := dispatch.NewMux(cfg, lock.New())
	dispatch.RegisterActions(mux, services)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return mux
}
