package constants

const (
	CHANNEL_SIZE            = 64   // 单个 websocket 连接的推送缓冲
	REDIS_TIMEOUT           = 5    // 目录缓存过期时间 (分钟)
	STATUS_SMS_THROTTLE     = 10   // 同一申请状态短信的限流窗口 (分钟)
	MAX_ACTIVE_APPLICATIONS = 3    // 每个申请人同时进行中的申请上限
	MESSAGE_MAX_LENGTH      = 2000 // 消息内容上限（按字符计）
)
