package autoload

// Import all intent subpackages for side-effect registration. The response
// cache is not listed: it needs a capacity and an optional shared tier, so
// the resolver adds it explicitly.
import (
	_ "github.com/MJBeltran13/ai-chatbot-shop/middlewares/contactinfo"
	_ "github.com/MJBeltran13/ai-chatbot-shop/middlewares/fallback"
	_ "github.com/MJBeltran13/ai-chatbot-shop/middlewares/greeting"
	_ "github.com/MJBeltran13/ai-chatbot-shop/middlewares/guard"
	_ "github.com/MJBeltran13/ai-chatbot-shop/middlewares/pricing"
	_ "github.com/MJBeltran13/ai-chatbot-shop/middlewares/procedures"
	_ "github.com/MJBeltran13/ai-chatbot-shop/middlewares/sections"
)
