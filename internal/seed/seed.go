package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/gemstone-shop/gemstone/internal/ai"
	"github.com/gemstone-shop/gemstone/internal/constants"
	"github.com/gemstone-shop/gemstone/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeder populates the database with sample and AI-generated data.
// Confirm gates destructive steps and Printf reports progress; both
// default to no-ops so the seeder stays usable from tests.
type Seeder struct {
	db      *gorm.DB
	ai      *ai.Client
	Confirm func(question string) bool
	Printf  func(format string, args ...interface{})
}

// NewSeeder builds a seeder over the given connection.
func NewSeeder(db *gorm.DB, aiClient *ai.Client) *Seeder {
	return &Seeder{
		db:      db,
		ai:      aiClient,
		Confirm: func(string) bool { return true },
		Printf:  func(string, ...interface{}) {},
	}
}

type sampleUser struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Profile   models.Profile
}

var sampleUsers = []sampleUser{
	{
		Username:  "john_trader",
		Email:     "john@example.com",
		Password:  "securepass123",
		FirstName: "John",
		LastName:  "Smith",
		Profile: models.Profile{
			PhoneNumber: "+1 555-123-4567",
			Address:     "123 Gold Street",
			City:        "New York",
			State:       "NY",
			Country:     "USA",
			PostalCode:  "10001",
		},
	},
	{
		Username:  "dubai_gold",
		Email:     "ahmed@example.com",
		Password:  "dubai2023",
		FirstName: "Ahmed",
		LastName:  "Al-Mansour",
		Profile: models.Profile{
			PhoneNumber: "+971 50 123 4567",
			Address:     "Gold Souk, Shop 45",
			City:        "Dubai",
			State:       "Dubai",
			Country:     "UAE",
			PostalCode:  "12345",
		},
	},
	{
		Username:  "swiss_metals",
		Email:     "hans@example.com",
		Password:  "swiss2023",
		FirstName: "Hans",
		LastName:  "Mueller",
		Profile: models.Profile{
			PhoneNumber: "+41 44 123 4567",
			Address:     "Bahnhofstrasse 123",
			City:        "Zurich",
			State:       "Zurich",
			Country:     "Switzerland",
			PostalCode:  "8001",
		},
	},
}

type sampleCategory struct {
	Name        string
	Description string
}

var sampleCategories = []sampleCategory{
	{"Gold Bullion", "Investment grade gold bullion in various forms and weights."},
	{"Silver Products", "Silver bullion, coins, and investment products."},
	{"Platinum & Palladium", "Platinum and palladium investment products."},
	{"Numismatic Coins", "Collectible gold and silver coins with numismatic value."},
	{"Jewelry", "Fine jewelry made from precious metals."},
}

type sampleProduct struct {
	Name        string
	Description string
	Price       string
	Stock       int
	Featured    bool
}

var sampleProducts = map[string][]sampleProduct{
	"Gold Bullion": {
		{"1 oz Gold Bar", "Pure 999.9 fine gold bar, 1 troy ounce. Produced by PAMP Suisse.", "1950.00", 50, true},
		{"1 kg Gold Bar", "Pure 999.9 fine gold bar, 1 kilogram. Produced by Emirates Gold.", "62500.00", 10, true},
		{"American Gold Eagle 1 oz", "Official gold bullion coin of the United States, 1 troy ounce of 91.67% pure gold.", "2050.00", 100, false},
	},
	"Silver Products": {
		{"100 oz Silver Bar", "Pure 999 fine silver bar, 100 troy ounces.", "2700.00", 30, false},
		{"Silver Canadian Maple Leaf 1 oz", "Official silver bullion coin of Canada, 1 troy ounce of 999.9 fine silver.", "28.50", 500, true},
	},
	"Platinum & Palladium": {
		{"1 oz Platinum Bar", "Pure 999.5 fine platinum bar, 1 troy ounce.", "950.00", 25, false},
		{"1 oz Palladium Maple Leaf", "Canadian Palladium Maple Leaf, 1 troy ounce of 999.5 fine palladium.", "1050.00", 15, false},
	},
	"Numismatic Coins": {
		{"Gold Sovereign - King George V", "Historic British gold sovereign coin from the reign of King George V, 7.32g of 22 carat gold.", "550.00", 20, true},
	},
	"Jewelry": {
		{"24K Gold Chain - 50g", "Pure 24 karat gold chain, 50 grams, handcrafted in Dubai.", "3200.00", 5, true},
	},
}

// PopulateSampleData fills the database with precious-metals sample
// users, categories, products and orders in one transaction. Records
// that already exist are skipped, so reruns are safe.
func (s *Seeder) PopulateSampleData() error {
	if !s.Confirm("This will populate the database with sample data. Proceed?") {
		s.Printf("operation cancelled")
		return nil
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		s.Printf("creating sample users...")
		if err := s.createSampleUsers(tx); err != nil {
			return err
		}
		s.Printf("creating categories...")
		if err := s.createSampleCategories(tx); err != nil {
			return err
		}
		s.Printf("creating products...")
		if err := s.createSampleProducts(tx); err != nil {
			return err
		}
		s.Printf("creating orders...")
		return s.createSampleOrders(tx)
	})
}

func (s *Seeder) createSampleUsers(tx *gorm.DB) error {
	for _, data := range sampleUsers {
		var existing models.User
		err := tx.Where("username = ?", data.Username).First(&existing).Error
		if err == nil {
			s.Printf("user %s already exists, skipping", data.Username)
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := models.User{
			Username:     data.Username,
			Email:        data.Email,
			PasswordHash: string(hash),
			FirstName:    data.FirstName,
			LastName:     data.LastName,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile := data.Profile
		profile.UserID = user.ID
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.Cart{UserID: user.ID}).Error; err != nil {
			return err
		}
		s.Printf("created user: %s", user.Username)
	}
	return nil
}

func (s *Seeder) createSampleCategories(tx *gorm.DB) error {
	for _, data := range sampleCategories {
		var count int64
		if err := tx.Model(&models.Category{}).Where("name = ?", data.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			s.Printf("category %s already exists, skipping", data.Name)
			continue
		}
		category := models.Category{
			Name:        data.Name,
			Slug:        models.Slugify(data.Name),
			Description: data.Description,
		}
		if err := tx.Create(&category).Error; err != nil {
			return err
		}
		s.Printf("created category: %s", category.Name)
	}
	return nil
}

func (s *Seeder) createSampleProducts(tx *gorm.DB) error {
	for categoryName, items := range sampleProducts {
		var category models.Category
		err := tx.Where("name = ?", categoryName).First(&category).Error
		if err == gorm.ErrRecordNotFound {
			s.Printf("category %s does not exist, skipping its products", categoryName)
			continue
		}
		if err != nil {
			return err
		}

		for _, data := range items {
			var count int64
			if err := tx.Model(&models.Product{}).Where("name = ?", data.Name).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				s.Printf("product %s already exists, skipping", data.Name)
				continue
			}
			price, err := models.NewMoneyFromString(data.Price)
			if err != nil {
				return fmt.Errorf("bad sample price %q: %w", data.Price, err)
			}
			product := models.Product{
				CategoryID:  category.ID,
				Name:        data.Name,
				Slug:        models.Slugify(data.Name),
				Description: data.Description,
				Price:       price,
				Stock:       data.Stock,
				Available:   true,
				Featured:    data.Featured,
			}
			if err := tx.Create(&product).Error; err != nil {
				return err
			}
			s.Printf("created product: %s", product.Name)
		}
	}
	return nil
}

func (s *Seeder) createSampleOrders(tx *gorm.DB) error {
	var users []models.User
	if err := tx.Preload("Profile").Find(&users).Error; err != nil {
		return err
	}
	if len(users) == 0 {
		s.Printf("no users found, skipping order creation")
		return nil
	}
	var products []models.Product
	if err := tx.Find(&products).Error; err != nil {
		return err
	}
	if len(products) == 0 {
		s.Printf("no products found, skipping order creation")
		return nil
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	orderStatuses := []string{
		constants.OrderStatusPending,
		constants.OrderStatusProcessing,
		constants.OrderStatusShipped,
		constants.OrderStatusDelivered,
	}
	paymentMethods := []string{"credit_card", "bank_transfer", "paypal"}

	for _, user := range users {
		if user.Profile == nil {
			s.Printf("user %s has no profile, skipping orders", user.Username)
			continue
		}

		for i := 0; i < 1+rng.Intn(3); i++ {
			lineCount := 1 + rng.Intn(3)
			total := decimal.Zero
			items := make([]models.OrderItem, 0, lineCount)
			for j := 0; j < lineCount; j++ {
				product := products[rng.Intn(len(products))]
				quantity := 1 + rng.Intn(3)
				total = total.Add(product.Price.Decimal.Mul(decimal.NewFromInt(int64(quantity))))
				items = append(items, models.OrderItem{
					ProductID: product.ID,
					Quantity:  quantity,
					Price:     product.Price,
				})
			}

			paymentStatus := constants.PaymentStatusPending
			if rng.Intn(2) == 0 {
				paymentStatus = constants.PaymentStatusPaid
			}
			order := models.Order{
				UserID:          user.ID,
				Status:          orderStatuses[rng.Intn(len(orderStatuses))],
				PaymentStatus:   paymentStatus,
				TotalPrice:      models.NewMoneyFromDecimal(total),
				ShippingAddr:    user.Profile.Address,
				ShippingCity:    user.Profile.City,
				ShippingState:   user.Profile.State,
				ShippingCountry: user.Profile.Country,
				ShippingPostal:  user.Profile.PostalCode,
				ShippingPhone:   user.Profile.PhoneNumber,
				PaymentMethod:   paymentMethods[rng.Intn(len(paymentMethods))],
				PaymentDetails:  models.JSON{"transaction_id": fmt.Sprintf("txn_%05d", rng.Intn(100000))},
			}
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
			for k := range items {
				items[k].OrderID = order.ID
			}
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
			s.Printf("created order #%d for %s", order.ID, user.Username)

			if order.PaymentStatus == constants.PaymentStatusPaid {
				payment := models.Payment{
					OrderID:       order.ID,
					UserID:        user.ID,
					PaymentID:     fmt.Sprintf("pmt_%05d", rng.Intn(100000)),
					Amount:        order.TotalPrice,
					Status:        "completed",
					PaymentMethod: order.PaymentMethod,
					PaymentDetails: models.JSON{
						"transaction_date": time.Now().AddDate(0, 0, -1-rng.Intn(30)).Format(time.RFC3339),
					},
				}
				if err := tx.Create(&payment).Error; err != nil {
					return err
				}
				s.Printf("created payment for order #%d", order.ID)
			}
		}
	}
	return nil
}
