package repoargs

type RepositoryName string

const (
	UserRepoName         RepositoryName = "user"
	ProductRepoName      RepositoryName = "product"
	OrderRepoName        RepositoryName = "order"
	TransactionRepoName  RepositoryName = "transaction"
	LoyaltyLevelRepoName RepositoryName = "loyalty_level"
	SettingRepoName      RepositoryName = "setting"
)
