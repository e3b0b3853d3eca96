package connect

const (
	TopicStateChanged = "connect.state"
	TopicWalletSignal = "wallet.signal"
	TopicEagerResult  = "wallet.eager"
	TopicDetection    = "wallet.detection"
)
