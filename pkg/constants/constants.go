package constants

// JoinRequestStatus 加入申请状态
const (
	JoinRequestStatusPending = "pending" // 待处理
	JoinRequestStatusApprove = "approve" // 已通过
	JoinRequestStatusReject  = "reject"  // 已拒绝
)

// 加入申请处理动作
const (
	JoinActionApprove = "approve"
	JoinActionReject  = "reject"
)

// Position 等级段位
const (
	PositionBeginner     = "beginner"
	PositionIntermediate = "intermediate"
	PositionMentor       = "mentor"
)

// 团队可见性
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// DefaultCreatorRole 创建者默认角色
const DefaultCreatorRole = "Project Leader"

// 积分
const (
	PointsPerPost  = 1
	PointsPerLevel = 50
)

// 上传目录
const (
	StorageProfilePicPrefix = "profile-pics"
	StoragePostImagePrefix  = "posts/images"
	StoragePostVideoPrefix  = "posts/videos"
)

// 上传表单字段
const (
	FormFieldProfilePic = "profile_pic"
	FormFieldMedia      = "media"
)

// DefaultAvatarURL 默认头像地址模板
const DefaultAvatarURL = "https://i.pravatar.cc/150?u=%s"

// 数据库驱动
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// 通知渠道
const (
	NotifyProviderLark = "lark"
	NotifyProviderLog  = "log"
)

// JWT 相关
const (
	JWTContextKey = "jwt_user"
	ContextEmail  = "email"
	ContextUserID = "user_id"
)

// HTTP Header / Cookie
const (
	HeaderAuthorization = "Authorization"
	HeaderBearerPrefix  = "Bearer "
	CookieToken         = "token"
)

// HomeRedirectURL 登录后跳转地址模板
const HomeRedirectURL = "/home/home.html?email=%s"
