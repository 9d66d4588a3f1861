package models

// 消费类别
const (
	CategoryFood            = "Food"
	CategoryGroceries       = "Groceries"
	CategoryTransport       = "Transport"
	CategoryEntertainment   = "Entertainment"
	CategoryShopping        = "Shopping"
	CategoryHealth          = "Health"
	CategoryBills           = "Bills"
	CategoryEducation       = "Education"
	CategoryTravel          = "Travel"
	CategoryUtilities       = "Utilities"
	CategoryRent            = "Rent"
	CategoryInsurance       = "Insurance"
	CategoryFitness         = "Fitness"
	CategoryGifts           = "Gifts"
	CategoryPersonalCare    = "Personal Care"
	CategoryPetCare         = "Pet Care"
	CategoryHomeMaintenance = "Home Maintenance"
	CategorySubscriptions   = "Subscriptions"
	CategoryDiningOut       = "Dining Out"
	CategoryInvestment      = "Investment"
	CategorySavings         = "Savings"
	CategoryCharity         = "Charity"
	CategoryOther           = "Other"
)

var categories = []string{
	CategoryFood,
	CategoryGroceries,
	CategoryTransport,
	CategoryEntertainment,
	CategoryShopping,
	CategoryHealth,
	CategoryBills,
	CategoryEducation,
	CategoryTravel,
	CategoryUtilities,
	CategoryRent,
	CategoryInsurance,
	CategoryFitness,
	CategoryGifts,
	CategoryPersonalCare,
	CategoryPetCare,
	CategoryHomeMaintenance,
	CategorySubscriptions,
	CategoryDiningOut,
	CategoryInvestment,
	CategorySavings,
	CategoryCharity,
	CategoryOther,
}

var categorySet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		m[c] = struct{}{}
	}
	return m
}()

// GetCategories 获取所有消费类别
func GetCategories() []string {
	return append([]string(nil), categories...)
}

// IsValidCategory 类别是否在枚举中
func IsValidCategory(c string) bool {
	_, ok := categorySet[c]
	return ok
}
